package options

import "fmt"

// CoercionError reports a value that could not be converted to the numeric
// type an option requires (for example a non-numeric limit).
type CoercionError struct {
	Option string // The option being set, e.g. "limit".
	Value  any    // The offending input value.
	Err    error  // The underlying conversion failure, if any.
}

// Error returns the error message for a CoercionError.
func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot coerce %v (%T) for option %q: %v", e.Value, e.Value, e.Option, e.Err)
	}
	return fmt.Sprintf("cannot coerce %v (%T) for option %q", e.Value, e.Value, e.Option)
}

// Unwrap exposes the underlying conversion error for errors.Is/As.
func (e *CoercionError) Unwrap() error {
	return e.Err
}

// MalformedSpecError reports a sort or slice descriptor that does not match
// any accepted shape, such as an unknown direction token or an unparsable
// sort expression.
type MalformedSpecError struct {
	Kind   string // The descriptor kind, "sort" or "slice".
	Input  any    // The offending input.
	Detail string // A short description of what was wrong.
}

// Error returns the error message for a MalformedSpecError.
func (e *MalformedSpecError) Error() string {
	return fmt.Sprintf("malformed %s specification %v: %s", e.Kind, e.Input, e.Detail)
}
