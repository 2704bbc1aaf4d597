package sink

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/zoobzio/sqlkit"
)

// PgxQuerier is the part of *pgx.Conn and pgxpool.Pool that Pgx needs.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Pgx executes accepted statements through pgx. Parameters are passed
// positionally, matching the $n placeholders of the postgres platform.
type Pgx struct {
	q    PgxQuerier
	opts options

	mu   sync.Mutex
	last *Result
}

// NewPgx creates a sink over q.
func NewPgx(q PgxQuerier, opts ...Option) *Pgx {
	return &Pgx{q: q, opts: newOptions(opts)}
}

// Accept runs the statement and collects its rows.
func (p *Pgx) Accept(query string, params *sqlkit.ParameterContainer) error {
	logStatement(p.opts.logger, "executing statement", query, params)

	var args []any
	if params != nil {
		args = params.Values()
	}

	rows, err := p.q.Query(p.opts.ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, fd := range fields {
		cols[i] = fd.Name
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	p.opts.logger.Debug("statement complete", "rows", len(maps))
	p.mu.Lock()
	p.last = &Result{SQL: query, Columns: cols, Rows: maps}
	p.mu.Unlock()
	return nil
}

// Last returns the result of the most recent successful Accept.
func (p *Pgx) Last() (Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return Result{}, false
	}
	return *p.last, true
}
