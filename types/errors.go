package types

import "fmt"

// ErrorKind distinguishes malformed input from re-encoding failures.
type ErrorKind string

const (
	// KindValidation marks input that violates a structural precondition.
	KindValidation ErrorKind = "validation"
	// KindTransform marks already-valid data that could not be re-encoded.
	KindTransform ErrorKind = "transform"
)

// Sentinels for errors.Is. They are never returned directly.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrTransform  = &Error{Kind: KindTransform}
)

// Error is the single error type returned by the translators. Provider names
// the schema being produced and Data holds the offending raw value.
type Error struct {
	Kind     ErrorKind
	Provider Provider
	Message  string
	Data     any
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return fmt.Sprintf("%s: validation failed: %s", e.Provider, e.Message)
	case KindTransform:
		return fmt.Sprintf("%s: transform failed: %s", e.Provider, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
}

// Is matches another *Error of the same kind, so errors.Is(err, ErrValidation)
// works regardless of provider and payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewValidationError reports structurally invalid input.
func NewValidationError(message string, provider Provider, data any) *Error {
	return &Error{Kind: KindValidation, Provider: provider, Message: message, Data: data}
}

// NewTransformError reports a failure to re-encode valid data.
func NewTransformError(message string, provider Provider, data any) *Error {
	return &Error{Kind: KindTransform, Provider: provider, Message: message, Data: data}
}
