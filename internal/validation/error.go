package validation

import "errors"

// Error describes a single rejected field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + " " + e.Message
}

func newError(field, message string) error {
	return &Error{Field: field, Message: message}
}

// IsValidationError reports whether err (or anything it wraps) is an *Error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
