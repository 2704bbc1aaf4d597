// Package mysql provides the MySQL platform and SELECT decorator for sqlkit.
package mysql

import (
	"strings"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/internal/render"
)

// LimitSentinel is the largest unsigned 64-bit value. MySQL has no OFFSET
// without LIMIT, so this stands in for "no limit".
const LimitSentinel = "18446744073709551615"

// Platform implements sqlkit.Platform for MySQL.
type Platform struct {
	name  string
	style render.ParamStyle
}

// Option configures a Platform.
type Option func(*Platform)

// WithParamStyle selects the placeholder style; "?" by default. ":name" only
// works with drivers that bind sql.NamedArg, which go-sql-driver/mysql does not.
func WithParamStyle(style render.ParamStyle) Option {
	return func(p *Platform) {
		p.style = style
	}
}

// WithName overrides the dialect name reported in errors and logs.
func WithName(name string) Option {
	return func(p *Platform) {
		p.name = name
	}
}

// New creates a MySQL platform.
func New(opts ...Option) *Platform {
	p := &Platform{name: "mysql", style: render.ParamQuestion}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Platform) Name() string { return p.name }

// QuoteIdentifier quotes a MySQL identifier with backticks.
func (p *Platform) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// QuoteValue formats v as a MySQL literal; strings use backslash escaping.
func (p *Platform) QuoteValue(v any) (string, error) {
	return render.ValueQuoter{QuoteString: render.BackslashQuoteString}.Quote(v)
}

func (p *Platform) FormatParameterName(name string, position int) string {
	return p.style.Placeholder(name, position)
}

func (p *Platform) ParamStyle() render.ParamStyle { return p.style }

// Capabilities returns the SQL features supported by MySQL.
func (p *Platform) Capabilities() render.Capabilities {
	return render.Capabilities{
		Pagination:           render.PaginationLimitSentinel,
		LimitSentinel:        LimitSentinel,
		PaginationNeedsOrder: false,
		NamedParameters:      p.style.Named(),
		BackslashEscapes:     true,
	}
}

// DecorateSelect wraps s in a SelectDecorator.
func (p *Platform) DecorateSelect(s *sqlkit.Select) sqlkit.Statement {
	return NewSelectDecorator(s)
}

// SelectDecorator renders a Select with MySQL's LIMIT/OFFSET rules and
// delegates every other clause to the base pipeline. It references its
// subject and never copies or owns it.
type SelectDecorator struct {
	subject *sqlkit.Select
}

// NewSelectDecorator wraps s.
func NewSelectDecorator(s *sqlkit.Select) *SelectDecorator {
	return &SelectDecorator{subject: s}
}

// SetSubject replaces the wrapped statement.
func (d *SelectDecorator) SetSubject(s *sqlkit.Select) {
	d.subject = s
}

// Subject returns the wrapped statement.
func (d *SelectDecorator) Subject() *sqlkit.Select {
	return d.subject
}

// Build renders the subject, overriding LIMIT and OFFSET.
func (d *SelectDecorator) Build(ctx *sqlkit.Context) (string, error) {
	if d.subject == nil {
		return "", render.NewInvalidArgumentError("statement", "decorator has no subject")
	}
	return d.subject.BuildWith(ctx, map[sqlkit.Clause]sqlkit.Processor{
		sqlkit.ClauseLimit:  processLimit,
		sqlkit.ClauseOffset: processOffset,
	})
}

// processLimit emits the stored limit, or the sentinel when only an offset
// is set. The sentinel is always literal.
func processLimit(s *sqlkit.Select, ctx *sqlkit.Context) (string, error) {
	if limit := s.LimitValue(); limit.IsSet() {
		return "LIMIT " + ctx.Number("limit", limit), nil
	}
	if s.OffsetValue().IsSet() {
		return "LIMIT " + LimitSentinel, nil
	}
	return "", nil
}

func processOffset(s *sqlkit.Select, ctx *sqlkit.Context) (string, error) {
	offset := s.OffsetValue()
	if !offset.IsSet() {
		return "", nil
	}
	return "OFFSET " + ctx.Number("offset", offset), nil
}
