package sink

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/zoobzio/sqlkit"
)

// Querier is the part of *sql.DB, *sql.Conn and *sql.Tx that DB needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// DB executes accepted statements through database/sql and keeps the last result.
type DB struct {
	q    Querier
	opts options

	mu   sync.Mutex
	last *Result
}

// NewDB creates a sink over q.
func NewDB(q Querier, opts ...Option) *DB {
	return &DB{q: q, opts: newOptions(opts)}
}

// Accept runs the statement and collects its rows.
func (d *DB) Accept(query string, params *sqlkit.ParameterContainer) error {
	logStatement(d.opts.logger, "executing statement", query, params)

	var args []any
	if params != nil {
		args = params.Args(d.opts.style)
	}

	rows, err := d.q.QueryContext(d.opts.ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	res, err := scanRows(query, rows)
	if err != nil {
		return err
	}

	d.opts.logger.Debug("statement complete", "rows", len(res.Rows))
	d.mu.Lock()
	d.last = res
	d.mu.Unlock()
	return nil
}

// Last returns the result of the most recent successful Accept.
func (d *DB) Last() (Result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last == nil {
		return Result{}, false
	}
	return *d.last, true
}

func scanRows(query string, rows *sql.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	res := &Result{SQL: query, Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				values[i] = string(b)
			}
			row[col] = values[i]
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return res, nil
}
