// Package mssql provides the SQL Server platform and SELECT decorator for sqlkit.
package mssql

import (
	"strings"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/internal/render"
)

// Platform implements sqlkit.Platform for SQL Server.
type Platform struct{}

// New creates a SQL Server platform.
func New() *Platform {
	return &Platform{}
}

func (p *Platform) Name() string { return "mssql" }

// QuoteIdentifier quotes a SQL Server identifier with square brackets.
func (p *Platform) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, "]", "]]")
	return "[" + escaped + "]"
}

func (p *Platform) QuoteValue(v any) (string, error) {
	return render.ValueQuoter{QuoteString: render.DoubleQuoteString}.Quote(v)
}

// FormatParameterName returns @p1, @p2, ... by position.
func (p *Platform) FormatParameterName(name string, position int) string {
	return render.ParamAtP.Placeholder(name, position)
}

func (p *Platform) ParamStyle() render.ParamStyle { return render.ParamAtP }

// Capabilities returns the SQL features supported by SQL Server.
func (p *Platform) Capabilities() render.Capabilities {
	return render.Capabilities{
		Pagination:           render.PaginationOffsetFetch,
		PaginationNeedsOrder: true,
	}
}

func (p *Platform) DecorateSelect(s *sqlkit.Select) sqlkit.Statement {
	return NewSelectDecorator(s)
}

// SelectDecorator renders pagination as OFFSET ... ROWS FETCH NEXT ... ROWS ONLY.
type SelectDecorator struct {
	subject *sqlkit.Select
}

// NewSelectDecorator wraps s.
func NewSelectDecorator(s *sqlkit.Select) *SelectDecorator {
	return &SelectDecorator{subject: s}
}

func (d *SelectDecorator) SetSubject(s *sqlkit.Select) { d.subject = s }

func (d *SelectDecorator) Subject() *sqlkit.Select { return d.subject }

// Build renders the subject. OFFSET comes before FETCH, so both are emitted
// from the LIMIT step and the OFFSET step emits nothing.
func (d *SelectDecorator) Build(ctx *sqlkit.Context) (string, error) {
	if d.subject == nil {
		return "", render.NewInvalidArgumentError("statement", "decorator has no subject")
	}
	return d.subject.BuildWith(ctx, map[sqlkit.Clause]sqlkit.Processor{
		sqlkit.ClauseLimit:  processPagination,
		sqlkit.ClauseOffset: func(*sqlkit.Select, *sqlkit.Context) (string, error) { return "", nil },
	})
}

func processPagination(s *sqlkit.Select, ctx *sqlkit.Context) (string, error) {
	limit, offset := s.LimitValue(), s.OffsetValue()
	if !limit.IsSet() && !offset.IsSet() {
		return "", nil
	}
	// OFFSET/FETCH requires ORDER BY
	if len(s.Ordering()) == 0 {
		return "", render.NewUnsupportedClauseError("mssql", "LIMIT/OFFSET without ORDER BY",
			"add ORDER BY clause when using LIMIT or OFFSET")
	}

	var sql strings.Builder
	sql.WriteString("OFFSET ")
	if offset.IsSet() {
		sql.WriteString(ctx.Number("offset", offset))
	} else {
		sql.WriteString("0")
	}
	sql.WriteString(" ROWS")

	if limit.IsSet() {
		sql.WriteString(" FETCH NEXT ")
		sql.WriteString(ctx.Number("limit", limit))
		sql.WriteString(" ROWS ONLY")
	}
	return sql.String(), nil
}
