// Package postgres provides the PostgreSQL platform for sqlkit.
// PostgreSQL accepts LIMIT and OFFSET independently, so no SELECT decorator
// is needed and statements render through the base pipeline.
package postgres

import (
	"github.com/lib/pq"

	"github.com/zoobzio/sqlkit/internal/render"
)

// Platform implements sqlkit.Platform for PostgreSQL.
type Platform struct{}

// New creates a PostgreSQL platform.
func New() *Platform {
	return &Platform{}
}

func (p *Platform) Name() string { return "postgres" }

// QuoteIdentifier quotes a PostgreSQL identifier with double quotes.
func (p *Platform) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

// QuoteValue formats v as a PostgreSQL literal. Strings containing
// backslashes use the E'...' escape string form.
func (p *Platform) QuoteValue(v any) (string, error) {
	return render.ValueQuoter{
		QuoteString: pq.QuoteLiteral,
		True:        "TRUE",
		False:       "FALSE",
	}.Quote(v)
}

// FormatParameterName returns $1, $2, ... by position.
func (p *Platform) FormatParameterName(name string, position int) string {
	return render.ParamDollar.Placeholder(name, position)
}

func (p *Platform) ParamStyle() render.ParamStyle { return render.ParamDollar }

// Capabilities returns the SQL features supported by PostgreSQL.
func (p *Platform) Capabilities() render.Capabilities {
	return render.Capabilities{
		Pagination: render.PaginationLimitOffset,
	}
}
