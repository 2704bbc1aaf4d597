package render

import (
	"database/sql/driver"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// QuoteIdentifierChain quotes each dot-separated segment of name with quote.
// A "*" segment is left untouched so table.* survives.
func QuoteIdentifierChain(name string, quote func(string) string) string {
	segments := strings.Split(name, ".")
	for i, seg := range segments {
		if seg == "*" {
			continue
		}
		segments[i] = quote(seg)
	}
	return strings.Join(segments, ".")
}

// DoubleQuoteString quotes s as a standard SQL string literal, doubling single quotes.
func DoubleQuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var backslashReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"\x1a", `\Z`,
)

// BackslashQuoteString quotes s for dialects that treat backslash as an escape character.
func BackslashQuoteString(s string) string {
	return "'" + backslashReplacer.Replace(s) + "'"
}

// ValueQuoter formats Go values as SQL literals.
type ValueQuoter struct {
	QuoteString func(string) string
	True        string
	False       string
	TimeLayout  string
}

// DefaultTimeLayout is used when a ValueQuoter has no TimeLayout.
const DefaultTimeLayout = "2006-01-02 15:04:05.999999"

// Quote renders v as a literal. Unsupported types fail with InvalidArgumentError.
func (q ValueQuoter) Quote(v any) (string, error) {
	quoteString := q.QuoteString
	if quoteString == nil {
		quoteString = DoubleQuoteString
	}

	switch x := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return quoteString(x), nil
	case []byte:
		if x == nil {
			return "NULL", nil
		}
		return quoteString(string(x)), nil
	case bool:
		if x {
			return orDefault(q.True, "1"), nil
		}
		return orDefault(q.False, "0"), nil
	case time.Time:
		return quoteString(x.Format(orDefault(q.TimeLayout, DefaultTimeLayout))), nil
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case driver.Valuer:
		rv := reflect.ValueOf(x)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "NULL", nil
		}
		dv, err := x.Value()
		if err != nil {
			return "", NewInvalidArgumentError("value", "%T: %v", v, err)
		}
		if _, again := dv.(driver.Valuer); again {
			return "", NewInvalidArgumentError("value", "%T returned another driver.Valuer", v)
		}
		return q.Quote(dv)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.String:
		return quoteString(rv.String()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL", nil
		}
		return q.Quote(rv.Elem().Interface())
	}
	return "", NewInvalidArgumentError("value", "cannot quote value of type %T", v)
}

func formatFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", NewInvalidArgumentError("value", "%v has no SQL literal form", f)
	}
	return strconv.FormatFloat(f, 'g', -1, bits), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
