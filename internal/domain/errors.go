package domain

import "errors"

// Sentinel errors returned by stores. The application layer maps these to
// 404 responses.
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDeviceNotFound      = errors.New("device not found")
)

// ValidationError reports the first rule a submission failed. The message
// is client-facing and surfaced verbatim in the 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
