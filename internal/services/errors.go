package services

import (
	"errors"

	apperrors "github.com/flatrock-dev/quotequiz-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Quote specific errors
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrQuoteInUse       = errors.New("cannot delete quote that has been used in games")
	ErrNoQuotesExist    = errors.New("no quotes available in the system")
	ErrNotEnoughAuthors = errors.New("not enough authors in the system for multiple choice mode (minimum 3 required)")

	// User specific errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("user with this username already exists")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrAccountDisabled    = errors.New("your account has been disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuoteNotFound) ||
		errors.Is(err, ErrNoQuotesExist) ||
		errors.Is(err, ErrUserNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrAccountDisabled) ||
		errors.Is(err, ErrInvalidCredentials)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrNotEnoughAuthors) ||
		errors.Is(err, ErrInvalidRole) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrQuoteInUse) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrUsernameTaken)
}
