package services

import "errors"

// ErrInvalidCredentials is returned for unknown usernames, wrong
// passwords and disabled accounts alike, so a caller cannot tell which
// of the three happened.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError carries field-level messages for re-rendering a form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
