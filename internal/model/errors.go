package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Admin errors
	ErrAdminNotFound = errors.New("admin not found")
	ErrUsernameTaken = errors.New("username already exists")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Content errors
	ErrNewsNotFound    = errors.New("news article not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidID is returned for ids that are not 24 hex characters
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidImage is returned for uploads that are not jpeg, png or gif
	ErrInvalidImage = errors.New("only image files are allowed")
)

// ValidationError reports a request field that failed validation
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
