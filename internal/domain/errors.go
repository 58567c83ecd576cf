// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrNegativeStreak is returned when a card would end up with a negative
	// correct-review streak. The streak is never silently clamped.
	ErrNegativeStreak = errors.New("correct review streak cannot be negative")
)

// IsValidationError reports whether err is one of the domain validation
// errors, so callers can distinguish bad input from infrastructure
// failures without enumerating every sentinel themselves.
func IsValidationError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}

	for _, sentinel := range []error{
		ErrValidation,
		ErrInvalidID,
		ErrInvalidEmail,
		ErrNegativeStreak,
		ErrCardIDEmpty,
		ErrCardDeckIDEmpty,
		ErrCardWordEmpty,
		ErrCardWordTooLong,
		ErrDeckIDEmpty,
		ErrDeckUserIDEmpty,
		ErrDeckNameEmpty,
		ErrDeckNameTooLong,
		ErrDeckDescriptionTooLong,
		ErrDeckLanguageEmpty,
		ErrDeckLanguageTooLong,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// ValidationError provides field-level context for a validation failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError wrapping ErrValidation
// unless a more specific sentinel is provided.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
