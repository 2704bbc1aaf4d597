package sink

import (
	"log/slog"
	"sync"

	"github.com/zoobzio/sqlkit"
)

// Statement is one recorded render.
type Statement struct {
	SQL     string
	Names   []string
	Params  map[string]any
	Literal bool
}

// Recorder keeps every accepted statement in memory. It is safe for
// concurrent use.
type Recorder struct {
	mu         sync.Mutex
	statements []Statement
	logger     *slog.Logger
}

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...Option) *Recorder {
	o := newOptions(opts)
	return &Recorder{logger: o.logger}
}

// Accept records the statement.
func (r *Recorder) Accept(query string, params *sqlkit.ParameterContainer) error {
	logStatement(r.logger, "recording statement", query, params)

	st := Statement{SQL: query, Literal: params == nil}
	if params != nil {
		st.Names = params.Names()
		st.Params = params.NamedArray()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, st)
	return nil
}

// Statements returns a copy of everything recorded so far.
func (r *Recorder) Statements() []Statement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Statement(nil), r.statements...)
}

// Last returns the most recent statement.
func (r *Recorder) Last() (Statement, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statements) == 0 {
		return Statement{}, false
	}
	return r.statements[len(r.statements)-1], true
}

// Reset discards recorded statements.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = nil
}
