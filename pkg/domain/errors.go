package domain

import (
	"errors"
	"fmt"
)

// ErrObjectNotFound is returned when a request id does not resolve to a
// live object in the host.
var ErrObjectNotFound = errors.New("object not found")

// ValidationError represents a request rejected before any host call.
// Its message carries the "duplicate failed: " prefix that remote
// agents match on.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "duplicate failed: " + e.Reason
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
