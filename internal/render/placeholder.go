package render

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamStyle selects the placeholder syntax a driver expects.
type ParamStyle int

const (
	ParamQuestion ParamStyle = iota // ?
	ParamDollar                     // $1, $2, ...
	ParamAtP                        // @p1, @p2, ...
	ParamColon                      // :name
)

var paramStyleNames = map[ParamStyle]string{
	ParamQuestion: "question",
	ParamDollar:   "dollar",
	ParamAtP:      "atp",
	ParamColon:    "colon",
}

func (s ParamStyle) String() string {
	if name, ok := paramStyleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ParamStyle(%d)", int(s))
}

// ParseParamStyle parses a style name as written in configuration.
func ParseParamStyle(name string) (ParamStyle, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for style, n := range paramStyleNames {
		if n == name {
			return style, nil
		}
	}
	return 0, NewInvalidArgumentError("param_style", "unknown placeholder style %q", name)
}

// Named reports whether placeholders of this style carry the parameter name.
func (s ParamStyle) Named() bool {
	return s == ParamColon
}

// Placeholder formats the placeholder for the parameter at the 1-based position.
func (s ParamStyle) Placeholder(name string, position int) string {
	switch s {
	case ParamDollar:
		return "$" + strconv.Itoa(position)
	case ParamAtP:
		return "@p" + strconv.Itoa(position)
	case ParamColon:
		return ":" + name
	default:
		return "?"
	}
}
