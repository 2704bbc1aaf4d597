// Package types holds the dialect-agnostic intermediate model shared by the
// predicate, statement and dialect packages.
package types

import (
	"fmt"
	"strings"
)

// Kind tags how a single value inside an Expression is emitted.
type Kind int

const (
	KindLiteral    Kind = iota // written verbatim
	KindValue                  // bound as a parameter, or quoted in literal mode
	KindIdentifier             // quoted with the platform's identifier rules
	KindNested                 // an ExpressionProvider rendered in place
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindValue:
		return "value"
	case KindIdentifier:
		return "identifier"
	case KindNested:
		return "nested"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Expression is one rendered clause fragment.
// Template holds %s markers consumed in order by Values; %% is a literal percent sign.
type Expression struct {
	Template string
	Values   []any
	Kinds    []Kind
}

// ExpressionProvider is implemented by anything that compiles to an Expression.
type ExpressionProvider interface {
	Expression() Expression
}

// Markers counts the %s markers in the template.
func (e Expression) Markers() int {
	n := 0
	for i := 0; i < len(e.Template); i++ {
		if e.Template[i] != '%' || i+1 >= len(e.Template) {
			continue
		}
		switch e.Template[i+1] {
		case 's':
			n++
			i++
		case '%':
			i++
		}
	}
	return n
}

// Validate checks that values, kinds and markers line up.
func (e Expression) Validate() error {
	if len(e.Values) != len(e.Kinds) {
		return fmt.Errorf("expression %q: %d values but %d kinds", e.Template, len(e.Values), len(e.Kinds))
	}
	if m := e.Markers(); m != len(e.Values) {
		return fmt.Errorf("expression %q: %d markers but %d values", e.Template, m, len(e.Values))
	}
	for i, k := range e.Kinds {
		if k != KindNested {
			continue
		}
		if _, ok := e.Values[i].(ExpressionProvider); !ok {
			return fmt.Errorf("expression %q: nested value %d (%T) does not provide an expression", e.Template, i, e.Values[i])
		}
	}
	return nil
}

// Join concatenates expressions with sep between them, keeping values in order.
// sep must not contain markers.
func Join(sep string, exprs ...Expression) Expression {
	var out Expression
	templates := make([]string, 0, len(exprs))
	for _, e := range exprs {
		templates = append(templates, e.Template)
		out.Values = append(out.Values, e.Values...)
		out.Kinds = append(out.Kinds, e.Kinds...)
	}
	out.Template = strings.Join(templates, sep)
	return out
}

// EscapeTemplate makes raw SQL safe to use as a template with no markers.
func EscapeTemplate(sql string) string {
	return strings.ReplaceAll(sql, "%", "%%")
}
