package sqlkit

import (
	"database/sql"

	"github.com/zoobzio/sqlkit/internal/render"
)

// ParameterContainer is an ordered, named set of bound values produced by a
// prepared render. Insertion order is placeholder order.
type ParameterContainer struct {
	names  []string
	values map[string]any
}

// NewParameterContainer creates an empty container.
func NewParameterContainer() *ParameterContainer {
	return &ParameterContainer{values: make(map[string]any)}
}

// Set stores v under name and returns the name's 1-based position.
// Setting an existing name replaces its value without moving it.
func (p *ParameterContainer) Set(name string, v any) int {
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = v
	return p.position(name)
}

func (p *ParameterContainer) position(name string) int {
	for i, n := range p.names {
		if n == name {
			return i + 1
		}
	}
	return 0
}

// Get returns the value stored under name.
func (p *ParameterContainer) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Has reports whether name is present.
func (p *ParameterContainer) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Len returns the number of parameters.
func (p *ParameterContainer) Len() int {
	return len(p.names)
}

// Names returns parameter names in placeholder order.
func (p *ParameterContainer) Names() []string {
	return append([]string(nil), p.names...)
}

// Values returns parameter values in placeholder order.
func (p *ParameterContainer) Values() []any {
	out := make([]any, len(p.names))
	for i, n := range p.names {
		out[i] = p.values[n]
	}
	return out
}

// NamedArray returns a copy of the name to value mapping.
func (p *ParameterContainer) NamedArray() map[string]any {
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Args returns driver arguments for the given placeholder style: sql.NamedArg
// values for named styles, plain values in order otherwise.
func (p *ParameterContainer) Args(style render.ParamStyle) []any {
	if !style.Named() {
		return p.Values()
	}
	out := make([]any, len(p.names))
	for i, n := range p.names {
		out[i] = sql.Named(n, p.values[n])
	}
	return out
}
