package types

// Operator represents a comparison operator usable in an operator predicate.
type Operator string

const (
	EQ      Operator = "="
	NE      Operator = "!="
	LTGT    Operator = "<>"
	GT      Operator = ">"
	GE      Operator = ">="
	LT      Operator = "<"
	LE      Operator = "<="
	LIKE    Operator = "LIKE"
	NotLike Operator = "NOT LIKE"
)

var operators = map[Operator]bool{
	EQ: true, NE: true, LTGT: true, GT: true, GE: true,
	LT: true, LE: true, LIKE: true, NotLike: true,
}

// Valid reports whether op is a known comparison operator.
func (op Operator) Valid() bool {
	return operators[op]
}
