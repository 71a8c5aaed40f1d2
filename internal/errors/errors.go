package errors

import (
	"errors"
	"fmt"
)

// Common error types for the portfolio content server
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Content errors
	ErrValidation = errors.New("validation failed")
	ErrIntegrity  = errors.New("stored data is corrupted")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Validationf builds an ErrValidation carrying a caller-facing reason (see Reason).
func Validationf(format string, args ...interface{}) error {
	return &reasonError{reason: fmt.Sprintf(format, args...), kind: ErrValidation}
}

// Reason returns the caller-facing reason attached by Validationf, or "" when none.
func Reason(err error) string {
	var re *reasonError
	if errors.As(err, &re) {
		return re.reason
	}
	return ""
}

type reasonError struct {
	reason string
	kind   error
}

func (e *reasonError) Error() string {
	return e.reason + ": " + e.kind.Error()
}

func (e *reasonError) Unwrap() error {
	return e.kind
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
