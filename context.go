package sqlkit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// maxNestingDepth bounds recursion through nested expressions.
const maxNestingDepth = 64

// Mode selects how values are emitted during a render.
type Mode int

const (
	// ModePrepare emits placeholders and collects values in a ParameterContainer.
	ModePrepare Mode = iota
	// ModeLiteral inlines values into the SQL text.
	ModeLiteral
)

func (m Mode) String() string {
	if m == ModeLiteral {
		return "literal"
	}
	return "prepare"
}

// Context carries the state of one render: the platform, the mode and, in
// prepare mode, the parameter container being filled. A Context is used for
// a single render and then discarded.
type Context struct {
	platform Platform
	mode     Mode
	params   *ParameterContainer
	counters map[string]int
}

// NewContext creates a render context for p in the given mode.
func NewContext(p Platform, mode Mode) *Context {
	ctx := &Context{
		platform: p,
		mode:     mode,
		counters: make(map[string]int),
	}
	if mode == ModePrepare {
		ctx.params = NewParameterContainer()
	}
	return ctx
}

// Platform returns the platform being rendered for.
func (c *Context) Platform() Platform { return c.platform }

// Mode returns the render mode.
func (c *Context) Mode() Mode { return c.mode }

// Prepared reports whether values become placeholders.
func (c *Context) Prepared() bool { return c.mode == ModePrepare }

// Params returns the container being filled; nil in literal mode.
func (c *Context) Params() *ParameterContainer { return c.params }

// QuoteIdentifier quotes a possibly dotted identifier, segment by segment.
func (c *Context) QuoteIdentifier(name string) string {
	return render.QuoteIdentifierChain(name, c.platform.QuoteIdentifier)
}

// NextName returns prefix followed by a per-render counter: where1, where2, ...
func (c *Context) NextName(prefix string) string {
	c.counters[prefix]++
	return prefix + strconv.Itoa(c.counters[prefix])
}

// Number emits a LIMIT/OFFSET operand. In prepare mode the raw value is bound
// under name; in literal mode its text is written unmodified.
func (c *Context) Number(name string, n Number) string {
	if !c.Prepared() {
		return n.String()
	}
	pos := c.params.Set(name, n.Raw())
	return c.platform.FormatParameterName(name, pos)
}

// Value emits a value bound under name, or quoted by the platform in literal mode.
func (c *Context) Value(name string, v any) (string, error) {
	if !c.Prepared() {
		s, err := c.platform.QuoteValue(v)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return s, nil
	}
	pos := c.params.Set(name, v)
	return c.platform.FormatParameterName(name, pos), nil
}

// Expression renders one expression. Value-kind entries are named by
// NextName("where").
func (c *Context) Expression(e types.Expression) (string, error) {
	return c.expression(e, 0)
}

func (c *Context) expression(e types.Expression, depth int) (string, error) {
	if depth > maxNestingDepth {
		return "", fmt.Errorf("maximum expression nesting depth (%d) exceeded", maxNestingDepth)
	}
	if err := e.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	next := 0
	t := e.Template
	for i := 0; i < len(t); i++ {
		if t[i] != '%' || i+1 >= len(t) {
			sb.WriteByte(t[i])
			continue
		}
		switch t[i+1] {
		case '%':
			sb.WriteByte('%')
			i++
		case 's':
			s, err := c.operand(e.Values[next], e.Kinds[next], depth)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
			next++
			i++
		default:
			sb.WriteByte('%')
		}
	}
	return sb.String(), nil
}

func (c *Context) operand(v any, kind types.Kind, depth int) (string, error) {
	switch kind {
	case types.KindIdentifier:
		return c.QuoteIdentifier(fmt.Sprint(v)), nil
	case types.KindNested:
		return c.expression(v.(types.ExpressionProvider).Expression(), depth+1)
	case types.KindValue:
		return c.Value(c.NextName("where"), v)
	default:
		return fmt.Sprint(v), nil
	}
}

// Parts renders a flattened predicate set, joining entries with their combinators.
func (c *Context) Parts(parts []types.Part) (string, error) {
	var sb strings.Builder
	for _, part := range parts {
		switch p := part.(type) {
		case types.Combinator:
			sb.WriteString(" " + p.String() + " ")
		case types.Expression:
			s, err := c.Expression(p)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		}
	}
	return sb.String(), nil
}
