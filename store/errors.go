package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("reservation not found")

	// ErrStatusConflict means a conditional status update matched the id but
	// not the expected current status. The caller decides what that means
	// (usually: somebody else decided first).
	ErrStatusConflict = errors.New("reservation status conflict")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// ValidationError reports a malformed or missing field on insert.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
