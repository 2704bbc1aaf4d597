package render

// PaginationStyle describes how a dialect expresses LIMIT and OFFSET.
type PaginationStyle int

const (
	PaginationLimitOffset   PaginationStyle = iota // LIMIT n OFFSET m, each optional
	PaginationLimitSentinel                        // OFFSET requires LIMIT; a sentinel fills a missing limit
	PaginationOffsetFetch                          // OFFSET m ROWS FETCH NEXT n ROWS ONLY
)

// Capabilities describes the SQL features supported by a dialect.
type Capabilities struct {
	Pagination           PaginationStyle // LIMIT/OFFSET rendering strategy
	LimitSentinel        string          // literal LIMIT used when only OFFSET is set
	PaginationNeedsOrder bool            // OFFSET/FETCH is only valid after ORDER BY
	NamedParameters      bool            // placeholders carry the parameter name
	BackslashEscapes     bool            // string literals treat backslash as an escape
}
