package service

import "errors"

// ErrNotFound is returned when an identifier resolves to zero rows.
var ErrNotFound = errors.New("item not found")

// ValidationError marks client-fixable input problems. Handlers surface the
// message as-is with a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}
