package sqlkit

import (
	"strings"

	"github.com/zoobzio/sqlkit/internal/render"
)

// stubPlatform quotes with backticks and uses a configurable placeholder style.
type stubPlatform struct {
	style render.ParamStyle
}

func (p stubPlatform) Name() string { return "stub" }

func (p stubPlatform) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (p stubPlatform) QuoteValue(v any) (string, error) {
	return render.ValueQuoter{}.Quote(v)
}

func (p stubPlatform) FormatParameterName(name string, position int) string {
	return p.style.Placeholder(name, position)
}

func (p stubPlatform) ParamStyle() render.ParamStyle { return p.style }

// substitute replaces each ? in sql with the literal form of the next value.
func substitute(sql string, values []any, p Platform) (string, error) {
	var sb strings.Builder
	next := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] != '?' || next >= len(values) {
			sb.WriteByte(sql[i])
			continue
		}
		var lit string
		if n, ok := values[next].(string); ok && isDigits(n) {
			lit = n
		} else {
			var err error
			if lit, err = p.QuoteValue(values[next]); err != nil {
				return "", err
			}
		}
		sb.WriteString(lit)
		next++
	}
	return sb.String(), nil
}
