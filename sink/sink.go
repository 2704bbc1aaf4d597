// Package sink provides sqlkit.Sink implementations: an in-memory Recorder
// and executors for database/sql and pgx.
package sink

import (
	"context"
	"log/slog"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/internal/render"
)

var (
	_ sqlkit.Sink = (*Recorder)(nil)
	_ sqlkit.Sink = (*DB)(nil)
	_ sqlkit.Sink = (*Pgx)(nil)
)

type options struct {
	logger *slog.Logger
	ctx    context.Context
	style  render.ParamStyle
}

// Option configures a sink.
type Option func(*options)

// WithLogger sets the logger. Rendered statements are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithContext sets the context used for queries issued from Accept.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithParamStyle sets how parameters are passed to the driver: positional
// values, or sql.NamedArg for named styles.
func WithParamStyle(style render.ParamStyle) Option {
	return func(o *options) {
		o.style = style
	}
}

func newOptions(opts []Option) options {
	o := options{
		ctx:   context.Background(),
		style: render.ParamQuestion,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

func logStatement(logger *slog.Logger, msg, query string, params *sqlkit.ParameterContainer) {
	if params == nil {
		logger.Debug(msg, slog.String("sql", query), slog.String("mode", sqlkit.ModeLiteral.String()))
		return
	}
	logger.Debug(msg,
		slog.String("sql", query),
		slog.String("mode", sqlkit.ModePrepare.String()),
		slog.Any("params", params.Names()))
}

// Result holds the rows returned by one executed statement.
type Result struct {
	SQL     string
	Columns []string
	Rows    []map[string]any
}
