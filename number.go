package sqlkit

import (
	"reflect"
	"strconv"

	"github.com/zoobzio/sqlkit/internal/render"
)

// Number is a LIMIT or OFFSET operand kept exactly as supplied: a Go integer
// or a string of decimal digits of any length. It is never coerced, so the
// value that reaches a parameter container or SQL text is the caller's own.
type Number struct {
	raw  any
	text string
	set  bool
}

// ParseNumber validates v as a non-negative integer operand.
func ParseNumber(v any) (Number, error) {
	return parseNumber("number", v)
}

func parseNumber(argument string, v any) (Number, error) {
	if n, ok := v.(Number); ok {
		return n, nil
	}
	if s, ok := v.(string); ok {
		if !isDigits(s) {
			return Number{}, render.NewInvalidArgumentError(argument, "%q is not a non-negative integer", s)
		}
		return Number{raw: s, text: s, set: true}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			return Number{}, render.NewInvalidArgumentError(argument, "%d is negative", rv.Int())
		}
		return Number{raw: v, text: strconv.FormatInt(rv.Int(), 10), set: true}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number{raw: v, text: strconv.FormatUint(rv.Uint(), 10), set: true}, nil
	}
	return Number{}, render.NewInvalidArgumentError(argument, "unsupported type %T", v)
}

// IsSet reports whether a value was supplied.
func (n Number) IsSet() bool { return n.set }

// Raw returns the value as supplied.
func (n Number) Raw() any { return n.raw }

// String returns the decimal text of the value.
func (n Number) String() string { return n.text }

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
