package sqlkit

import "github.com/zoobzio/sqlkit/internal/render"

// Platform captures one dialect's quoting and placeholder rules.
type Platform interface {
	// Name identifies the dialect in errors and logs.
	Name() string

	// QuoteIdentifier quotes a single identifier segment.
	QuoteIdentifier(name string) string

	// QuoteValue formats a value as a literal; used in literal mode only.
	QuoteValue(v any) (string, error)

	// FormatParameterName returns the placeholder for a parameter at a 1-based position.
	FormatParameterName(name string, position int) string
}

// SelectDecorator is implemented by platforms that adjust SELECT rendering.
type SelectDecorator interface {
	DecorateSelect(s *Select) Statement
}

// CapabilityProvider is implemented by platforms that describe their features.
type CapabilityProvider interface {
	Capabilities() render.Capabilities
}

// ParamStyler is implemented by platforms that report their placeholder style.
type ParamStyler interface {
	ParamStyle() render.ParamStyle
}

// CapabilitiesOf returns p's capabilities, or the plain LIMIT/OFFSET defaults.
func CapabilitiesOf(p Platform) render.Capabilities {
	if cp, ok := p.(CapabilityProvider); ok {
		return cp.Capabilities()
	}
	return render.Capabilities{Pagination: render.PaginationLimitOffset}
}

// ParamStyleOf returns p's placeholder style, defaulting to "?".
func ParamStyleOf(p Platform) render.ParamStyle {
	if ps, ok := p.(ParamStyler); ok {
		return ps.ParamStyle()
	}
	return render.ParamQuestion
}
