package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Remote call errors
	ErrNetworkFailure = NewBaseError(
		http.StatusBadGateway,
		"NETWORK_FAILURE",
		"Remote service call failed",
		"",
	)

	ErrGatewayResponse = NewBaseError(
		http.StatusBadGateway,
		"GATEWAY_RESPONSE",
		"Remote relational service rejected the operation",
		"",
	)

	// Composite read errors
	ErrJoinIntegrity = NewBaseError(
		http.StatusBadGateway,
		"JOIN_INTEGRITY_FAILURE",
		"Trade record has no matching catalog id mapping",
		"",
	)

	// Session errors
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"No authenticated session",
		"",
	)

	ErrRevalidationFailed = NewBaseError(
		http.StatusUnauthorized,
		"REVALIDATION_FAILED",
		"Stored session token was rejected by the remote service",
		"",
	)

	// Router errors
	ErrUnknownOperation = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_OPERATION",
		"Operation is not in the catalog",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Operation arguments failed validation",
		"",
	)

	// Catalog errors
	ErrCatalogNotFound = NewBaseError(
		http.StatusNotFound,
		"CATALOG_NOT_FOUND",
		"Catalog entity not found",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal error",
		"",
	)
)
