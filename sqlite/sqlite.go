// Package sqlite provides the SQLite platform and SELECT decorator for sqlkit.
package sqlite

import (
	"strings"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/internal/render"
)

// LimitSentinel stands in for "no limit" when only OFFSET is set;
// SQLite treats a negative LIMIT as unbounded.
const LimitSentinel = "-1"

// Platform implements sqlkit.Platform for SQLite.
type Platform struct {
	style render.ParamStyle
}

// New creates a SQLite platform using "?" placeholders.
func New() *Platform {
	return &Platform{style: render.ParamQuestion}
}

// NewNamed creates a SQLite platform using ":name" placeholders.
func NewNamed() *Platform {
	return &Platform{style: render.ParamColon}
}

func (p *Platform) Name() string { return "sqlite" }

// QuoteIdentifier quotes a SQLite identifier with double quotes.
func (p *Platform) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `"` + escaped + `"`
}

func (p *Platform) QuoteValue(v any) (string, error) {
	return render.ValueQuoter{QuoteString: render.DoubleQuoteString}.Quote(v)
}

func (p *Platform) FormatParameterName(name string, position int) string {
	return p.style.Placeholder(name, position)
}

func (p *Platform) ParamStyle() render.ParamStyle { return p.style }

// Capabilities returns the SQL features supported by SQLite.
func (p *Platform) Capabilities() render.Capabilities {
	return render.Capabilities{
		Pagination:      render.PaginationLimitSentinel,
		LimitSentinel:   LimitSentinel,
		NamedParameters: p.style.Named(),
	}
}

func (p *Platform) DecorateSelect(s *sqlkit.Select) sqlkit.Statement {
	return NewSelectDecorator(s)
}

// SelectDecorator renders OFFSET without LIMIT as LIMIT -1 OFFSET n.
type SelectDecorator struct {
	subject *sqlkit.Select
}

// NewSelectDecorator wraps s.
func NewSelectDecorator(s *sqlkit.Select) *SelectDecorator {
	return &SelectDecorator{subject: s}
}

func (d *SelectDecorator) SetSubject(s *sqlkit.Select) { d.subject = s }

func (d *SelectDecorator) Subject() *sqlkit.Select { return d.subject }

func (d *SelectDecorator) Build(ctx *sqlkit.Context) (string, error) {
	if d.subject == nil {
		return "", render.NewInvalidArgumentError("statement", "decorator has no subject")
	}
	return d.subject.BuildWith(ctx, map[sqlkit.Clause]sqlkit.Processor{
		sqlkit.ClauseLimit:  processLimit,
		sqlkit.ClauseOffset: sqlkit.ProcessOffset,
	})
}

func processLimit(s *sqlkit.Select, ctx *sqlkit.Context) (string, error) {
	if limit := s.LimitValue(); limit.IsSet() {
		return "LIMIT " + ctx.Number("limit", limit), nil
	}
	if s.OffsetValue().IsSet() {
		return "LIMIT " + LimitSentinel, nil
	}
	return "", nil
}
