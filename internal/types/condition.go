package types

// Combinator joins two entries of a predicate set.
// It has exactly two values, so an invalid combinator cannot be constructed.
type Combinator bool

const (
	AND Combinator = false
	OR  Combinator = true
)

func (c Combinator) String() string {
	if c == OR {
		return "OR"
	}
	return "AND"
}

// Part is one token of a flattened predicate set: a Combinator or an Expression.
type Part interface {
	isPart()
}

func (Combinator) isPart() {}
func (Expression) isPart() {}
