package application

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError is the application-level error envelope. The REST layer
// reads HTTPStatus and Message; Err keeps the cause for logs.
type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidation = "VALIDATION_FAILED"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeUpstream   = "UPSTREAM_FAILED"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// NewValidationError wraps a client-caused submission failure. The message
// is shown to the client unchanged.
func NewValidationError(message string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewUpstreamError wraps a failed call to a peer device. Processor failures
// on the submit path never take this shape: they become a terminal
// status=error on the record instead.
func NewUpstreamError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeUpstream,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToHTTPStatus resolves the response status for any error reaching the
// REST boundary. Unknown errors are internal by definition.
func ToHTTPStatus(err error) int {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// ToErrorCode resolves the machine-readable code for logging.
func ToErrorCode(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ErrCodeInternal
}

// ClientMessage returns what the client may see. Internal causes are
// never leaked; only the envelope message goes out.
func ClientMessage(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return "internal server error"
}
