package session

import (
	"fmt"
	"strings"

	apperrors "github.com/Ezzedini-Yassine/frontdbforet/internal/errors"
)

const (
	minPasswordLength = 8
	minUsernameLength = 2
)

// ValidateCredentials checks sign-in input before any network call.
func ValidateCredentials(email, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}
	return nil
}

// ValidateRegistration checks sign-up input before any network call.
func ValidateRegistration(email, username, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(strings.TrimSpace(username)) < minUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters", apperrors.ErrValidation, minUsernameLength)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidation)
	}
	return nil
}
