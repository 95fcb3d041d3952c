// Package apperr holds the error taxonomy shared by the cookbook packages.
// Callers match these values with errors.Is / errors.As.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired is returned by mutating favorites calls made without a user.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound is returned when a store operation references a missing id.
	ErrNotFound = errors.New("not found")

	// ErrValidationFailed is wrapped by every ValidationError.
	ErrValidationFailed = errors.New("validation failed")

	// ErrMediaReadFailed is returned when an image source cannot be read.
	ErrMediaReadFailed = errors.New("media read failed")

	// ErrInvalidCredentials is returned by login with a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for expired, revoked or malformed tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrConflict is returned when a unique resource already exists.
	ErrConflict = errors.New("already exists")
)

// ValidationError names the precondition that failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidationFailed) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// MediaError wraps a read/decode failure so it matches ErrMediaReadFailed
// while keeping the underlying cause.
func MediaError(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMediaReadFailed, source, err)
}
