package sqlkit

import (
	"fmt"

	"github.com/zoobzio/sqlkit/internal/render"
)

// Statement is anything that renders a SELECT: a *Select itself, or a
// platform decorator holding a reference to one.
type Statement interface {
	// Subject returns the underlying statement model.
	Subject() *Select

	// Build renders the statement into ctx's mode.
	Build(ctx *Context) (string, error)
}

// Sink receives rendered statements. params is nil in literal mode.
type Sink interface {
	Accept(sql string, params *ParameterContainer) error
}

// Decorate wraps s in p's SELECT decorator when p has one.
func Decorate(s *Select, p Platform) Statement {
	if d, ok := p.(SelectDecorator); ok {
		return d.DecorateSelect(s)
	}
	return s
}

// RenderPrepared renders stmt with placeholders and returns the filled container.
// Rendering reads the statement only; every call gets a fresh container.
func RenderPrepared(stmt Statement, p Platform) (string, *ParameterContainer, error) {
	if err := checkRenderArgs(stmt, p); err != nil {
		return "", nil, err
	}
	ctx := NewContext(p, ModePrepare)
	sql, err := stmt.Build(ctx)
	if err != nil {
		return "", nil, err
	}
	return sql, ctx.Params(), nil
}

// RenderLiteral renders stmt with every value inlined.
func RenderLiteral(stmt Statement, p Platform) (string, error) {
	if err := checkRenderArgs(stmt, p); err != nil {
		return "", err
	}
	return stmt.Build(NewContext(p, ModeLiteral))
}

// Prepare renders stmt in prepare mode and hands the result to sink.
func Prepare(stmt Statement, p Platform, sink Sink) error {
	sql, params, err := RenderPrepared(stmt, p)
	if err != nil {
		return err
	}
	if err := sink.Accept(sql, params); err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	return nil
}

// Literal renders stmt in literal mode and hands the result to sink.
func Literal(stmt Statement, p Platform, sink Sink) error {
	sql, err := RenderLiteral(stmt, p)
	if err != nil {
		return err
	}
	if err := sink.Accept(sql, nil); err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	return nil
}

func checkRenderArgs(stmt Statement, p Platform) error {
	if p == nil {
		return render.NewInvalidArgumentError("platform", "cannot be nil")
	}
	if stmt == nil || stmt.Subject() == nil {
		return render.NewInvalidArgumentError("statement", "cannot be nil")
	}
	return nil
}
