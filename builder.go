package sqlkit

import (
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
	"github.com/zoobzio/sqlkit/predicate"
)

// OrderTerm is one ORDER BY entry.
type OrderTerm struct {
	Column    string
	Direction types.Direction
}

// Select is a dialect-independent SELECT statement. Setters chain; the first
// failed call is recorded, leaves the statement unchanged, and is returned
// by every later render.
type Select struct {
	table   string
	columns []string
	where   *predicate.Set
	order   []OrderTerm
	limit   Number
	offset  Number
	err     error
}

// NewSelect creates a SELECT over table. An empty table leaves FROM unset.
func NewSelect(table string) *Select {
	return &Select{table: table, where: predicate.NewSet()}
}

// Err returns the first error recorded by a setter.
func (s *Select) Err() error {
	return s.err
}

// From sets the table.
func (s *Select) From(table string) *Select {
	if s.err != nil {
		return s
	}
	if table == "" {
		s.err = render.NewInvalidArgumentError("from", "table name cannot be empty")
		return s
	}
	s.table = table
	return s
}

// Columns replaces the projection. Without columns the statement selects table.*.
func (s *Select) Columns(columns ...string) *Select {
	if s.err != nil {
		return s
	}
	for _, col := range columns {
		if col == "" {
			s.err = render.NewInvalidArgumentError("columns", "column name cannot be empty")
			return s
		}
	}
	s.columns = append([]string(nil), columns...)
	return s
}

// Where adds predicates to the WHERE set, joined by c (AND when omitted).
func (s *Select) Where(in predicate.Input, c ...types.Combinator) *Select {
	if s.err != nil {
		return s
	}
	if err := s.where.AddPredicates(in, c...); err != nil {
		s.err = err
	}
	return s
}

// OrderBy appends an ORDER BY term.
func (s *Select) OrderBy(column string, direction types.Direction) *Select {
	if s.err != nil {
		return s
	}
	if column == "" {
		s.err = render.NewInvalidArgumentError("order", "column name cannot be empty")
		return s
	}
	if !direction.Valid() {
		s.err = render.NewInvalidArgumentError("order", "invalid direction %q", string(direction))
		return s
	}
	s.order = append(s.order, OrderTerm{Column: column, Direction: direction})
	return s
}

// Limit sets LIMIT from an integer or a string of digits, stored as given.
func (s *Select) Limit(v any) *Select {
	if s.err != nil {
		return s
	}
	n, err := parseNumber("limit", v)
	if err != nil {
		s.err = err
		return s
	}
	s.limit = n
	return s
}

// Offset sets OFFSET from an integer or a string of digits, stored as given.
func (s *Select) Offset(v any) *Select {
	if s.err != nil {
		return s
	}
	n, err := parseNumber("offset", v)
	if err != nil {
		s.err = err
		return s
	}
	s.offset = n
	return s
}

// Table returns the FROM table.
func (s *Select) Table() string { return s.table }

// ColumnNames returns the explicit projection, or nil.
func (s *Select) ColumnNames() []string { return append([]string(nil), s.columns...) }

// Predicates returns the WHERE set. Mutating it mutates the statement.
func (s *Select) Predicates() *predicate.Set { return s.where }

// Ordering returns the ORDER BY terms.
func (s *Select) Ordering() []OrderTerm { return append([]OrderTerm(nil), s.order...) }

// LimitValue returns the LIMIT operand.
func (s *Select) LimitValue() Number { return s.limit }

// OffsetValue returns the OFFSET operand.
func (s *Select) OffsetValue() Number { return s.offset }

// Clone returns an independent copy, including the predicate tree.
func (s *Select) Clone() *Select {
	c := *s
	c.columns = append([]string(nil), s.columns...)
	c.order = append([]OrderTerm(nil), s.order...)
	c.where = s.where.Clone()
	return &c
}

// Subject returns s; a bare Select is its own statement.
func (s *Select) Subject() *Select { return s }

// Build renders s with the base pipeline.
func (s *Select) Build(ctx *Context) (string, error) {
	return s.BuildWith(ctx, nil)
}
