package svcerrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	categoryInvalidArgument  = "invalid_argument"
	categoryUnauthenticated  = "unauthenticated"
	categoryMethodNotAllowed = "method_not_allowed"
	categoryResourceConflict = "resource_conflict"
	categoryRateLimited      = "rate_limited"
	categoryInternal         = "internal"
	categoryUnavailable      = "unavailable"
)

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"
)

// NewInvalidArgumentError creates a new ServiceError with category invalid_argument.
func NewInvalidArgumentError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInvalidArgument,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusBadRequest,
	}
}

// NewUnauthenticatedError creates a new ServiceError with category unauthenticated.
func NewUnauthenticatedError(code, message string) *ServiceError {
	return &ServiceError{
		Category:       categoryUnauthenticated,
		Code:           code,
		Message:        message,
		HttpStatusCode: http.StatusUnauthorized,
	}
}

// NewMethodNotAllowedError creates a new ServiceError with category method_not_allowed.
func NewMethodNotAllowedError(code, message string) *ServiceError {
	return &ServiceError{
		Category:       categoryMethodNotAllowed,
		Code:           code,
		Message:        message,
		HttpStatusCode: http.StatusMethodNotAllowed,
	}
}

// NewRateLimitedError creates a new ServiceError with category rate_limited.
func NewRateLimitedError(code, message string) *ServiceError {
	return &ServiceError{
		Category:       categoryRateLimited,
		Code:           code,
		Message:        message,
		HttpStatusCode: http.StatusTooManyRequests,
	}
}

// NewUnavailableError creates a new ServiceError with category unavailable.
func NewUnavailableError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryUnavailable,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusServiceUnavailable,
	}
}

// NewInternalError creates a new ServiceError with category internal.
func NewInternalError(code string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInternal,
		Code:           code,
		Message:        "internal server error",
		Cause:          cause,
		HttpStatusCode: http.StatusInternalServerError,
	}
}

// NewInternalErrorUndefined creates a new ServiceError with category internal and code SYS_9001.
func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

// NewResourceConflictError creates a new ServiceError with category resource_conflict.
func NewResourceConflictError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryResourceConflict,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusConflict,
	}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// ServiceError represents a service-level error with category, code, message, and cause.
// It implements the error interface and supports error wrapping.
type ServiceError struct {
	Category       string // e.g. invalid_argument, rate_limited, internal
	Code           string // service-owned stable code (e.g. UPD_1000)
	Message        string // client-safe, human-readable
	Cause          error  // wrapped underlying error
	HttpStatusCode int    // HTTP status code
	// Details is optional client-safe context rendered next to the message,
	// such as the per-URL rejection reasons of an update.
	Details any
}

// WithDetails attaches client-safe details and returns the same error.
func (e *ServiceError) WithDetails(details any) *ServiceError {
	e.Details = details
	return e
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error to support errors.Is and errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == categoryInternal
}
