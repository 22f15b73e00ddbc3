package errors

import (
	"errors"
	"fmt"
)

// Common error types for the auth frontend
var (
	// Input errors
	ErrValidation = errors.New("validation failed")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// Session errors
	ErrNoSession      = errors.New("no session")
	ErrSessionExpired = errors.New("session expired")

	// Backend errors
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Expired marks err as a terminal session failure while keeping the cause
// in the chain.
func Expired(err error) error {
	if err == nil {
		return ErrSessionExpired
	}
	return fmt.Errorf("%w: %w", ErrSessionExpired, err)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
