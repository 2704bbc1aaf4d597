package render

import "fmt"

// InvalidArgumentError indicates malformed input to a builder or predicate call.
// It is raised at the call that supplied the input, never deferred to render time.
type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e InvalidArgumentError) Error() string {
	if e.Argument == "" {
		return "invalid argument: " + e.Reason
	}
	return fmt.Sprintf("invalid argument %s: %s", e.Argument, e.Reason)
}

// NewInvalidArgumentError creates a new invalid argument error.
func NewInvalidArgumentError(argument, reason string, args ...any) error {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return InvalidArgumentError{Argument: argument, Reason: reason}
}

// UnsupportedClauseError indicates a clause the dialect cannot render or emulate.
type UnsupportedClauseError struct {
	Clause  string
	Dialect string
	Hint    string
}

func (e UnsupportedClauseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Dialect, e.Clause, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Clause)
}

// NewUnsupportedClauseError creates a new unsupported clause error.
func NewUnsupportedClauseError(dialect, clause string, hint ...string) error {
	err := UnsupportedClauseError{Clause: clause, Dialect: dialect}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}
