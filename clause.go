package sqlkit

import (
	"fmt"
	"strings"

	"github.com/zoobzio/sqlkit/internal/render"
)

// Clause identifies one step of the SELECT rendering pipeline.
type Clause int

const (
	ClauseSelect Clause = iota
	ClauseFrom
	ClauseWhere
	ClauseOrder
	ClauseLimit
	ClauseOffset
)

var clauseNames = map[Clause]string{
	ClauseSelect: "SELECT",
	ClauseFrom:   "FROM",
	ClauseWhere:  "WHERE",
	ClauseOrder:  "ORDER",
	ClauseLimit:  "LIMIT",
	ClauseOffset: "OFFSET",
}

func (c Clause) String() string {
	if name, ok := clauseNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Clause(%d)", int(c))
}

// pipeline is the clause order shared by both render modes, so placeholder
// order in prepare mode matches value order in literal mode.
var pipeline = []Clause{ClauseSelect, ClauseFrom, ClauseWhere, ClauseOrder, ClauseLimit, ClauseOffset}

// Processor renders one clause of s. An empty result omits the clause.
type Processor func(s *Select, ctx *Context) (string, error)

// BaseProcessor returns the dialect-neutral processor for c, or nil.
func BaseProcessor(c Clause) Processor {
	switch c {
	case ClauseSelect:
		return ProcessSelect
	case ClauseFrom:
		return ProcessFrom
	case ClauseWhere:
		return ProcessWhere
	case ClauseOrder:
		return ProcessOrder
	case ClauseLimit:
		return ProcessLimit
	case ClauseOffset:
		return ProcessOffset
	}
	return nil
}

// ProcessSelect renders the projection. Without explicit columns it selects table.*.
func ProcessSelect(s *Select, ctx *Context) (string, error) {
	if len(s.columns) == 0 {
		if s.table == "" {
			return "SELECT *", nil
		}
		return "SELECT " + ctx.QuoteIdentifier(s.table) + ".*", nil
	}
	cols := make([]string, len(s.columns))
	for i, col := range s.columns {
		cols[i] = ctx.QuoteIdentifier(col)
	}
	return "SELECT " + strings.Join(cols, ", "), nil
}

// ProcessFrom renders the FROM clause.
func ProcessFrom(s *Select, ctx *Context) (string, error) {
	if s.table == "" {
		return "", nil
	}
	return "FROM " + ctx.QuoteIdentifier(s.table), nil
}

// ProcessWhere renders the WHERE clause; an empty predicate set emits nothing.
func ProcessWhere(s *Select, ctx *Context) (string, error) {
	parts := s.where.ExpressionData()
	if len(parts) == 0 {
		return "", nil
	}
	sql, err := ctx.Parts(parts)
	if err != nil {
		return "", err
	}
	return "WHERE " + sql, nil
}

// ProcessOrder renders ORDER BY.
func ProcessOrder(s *Select, ctx *Context) (string, error) {
	if len(s.order) == 0 {
		return "", nil
	}
	terms := make([]string, len(s.order))
	for i, o := range s.order {
		terms[i] = ctx.QuoteIdentifier(o.Column) + " " + string(o.Direction)
	}
	return "ORDER BY " + strings.Join(terms, ", "), nil
}

// ProcessLimit renders LIMIT when set.
func ProcessLimit(s *Select, ctx *Context) (string, error) {
	if !s.limit.IsSet() {
		return "", nil
	}
	return "LIMIT " + ctx.Number("limit", s.limit), nil
}

// ProcessOffset renders OFFSET when set.
func ProcessOffset(s *Select, ctx *Context) (string, error) {
	if !s.offset.IsSet() {
		return "", nil
	}
	return "OFFSET " + ctx.Number("offset", s.offset), nil
}

// BuildWith runs the clause pipeline, using overrides in place of the base
// processors. An override for a clause outside the pipeline is an
// UnsupportedClauseError.
func (s *Select) BuildWith(ctx *Context, overrides map[Clause]Processor) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	for c := range overrides {
		if BaseProcessor(c) == nil {
			return "", render.NewUnsupportedClauseError(ctx.Platform().Name(), c.String(),
				"no such clause in the SELECT pipeline")
		}
	}

	parts := make([]string, 0, len(pipeline))
	for _, c := range pipeline {
		proc := BaseProcessor(c)
		if override, ok := overrides[c]; ok && override != nil {
			proc = override
		}
		sql, err := proc(s, ctx)
		if err != nil {
			return "", fmt.Errorf("%s: %w", c, err)
		}
		if sql != "" {
			parts = append(parts, sql)
		}
	}
	return strings.Join(parts, " "), nil
}
