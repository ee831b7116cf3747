package services

import "errors"

var (
	// ErrInvalidCredentials is returned for every login failure, whether the
	// email is unknown or the password is wrong, so responses cannot be used
	// to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a presented bearer token is unknown,
	// revoked, or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ValidationError carries field-level failures that can only be detected
// against the store, such as email uniqueness. It uses the same
// field->messages shape as the request validators so handlers can put both
// into one envelope.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewFieldError builds a ValidationError for a single field.
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}
