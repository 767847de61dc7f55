package faults

import "errors"

type ErrorCategory string

const (
	ValidationError  ErrorCategory = "ValidationError"
	NotFoundError    ErrorCategory = "NotFoundError"
	ConflictError    ErrorCategory = "ConflictError"
	AuthError        ErrorCategory = "AuthError"
	TransportError   ErrorCategory = "TransportError"
	UnsupportedError ErrorCategory = "UnsupportedError"
	InternalError    ErrorCategory = "InternalError"
)

// TypedError carries a category that callers and the CLI use to decide how a
// failure is reported. Not-found conditions of single resources are not
// errors and never produce a TypedError.
type TypedError struct {
	Category ErrorCategory
	Message  string
	Cause    error
}

func (e *TypedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" && e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Category)
}

func (e *TypedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewTypedError(category ErrorCategory, message string, cause error) *TypedError {
	return &TypedError{
		Category: category,
		Message:  message,
		Cause:    cause,
	}
}

func IsCategory(err error, category ErrorCategory) bool {
	return CategoryOf(err) == category && err != nil
}

// CategoryOf returns the category of the first TypedError in err's chain, or
// the empty category when there is none.
func CategoryOf(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	var typedErr *TypedError
	if !errors.As(err, &typedErr) {
		return ""
	}
	return typedErr.Category
}
