// Package errors defines the application error taxonomy. Every error carries
// the HTTP status code the handlers answer with, which matters for webhook
// callers: permanent codes stop redelivery, retryable codes invite it.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType identifies the error category in API responses and logs.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeBadRequest   ErrorType = "bad_request"
	ErrorTypeInternal     ErrorType = "internal_error"
)

// AppError is an error with a category, a caller-facing message, and the
// HTTP status code to respond with.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// newAppError is the shared constructor behind the typed helpers. Only the
// first detail string is kept.
func newAppError(typ ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    typ,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError reports input that parsed but violates a business rule.
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewUnauthorizedError reports a request with no authenticated caller.
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewBadRequestError reports a request body that could not be parsed at all.
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// GetAppError extracts an AppError from anywhere in the error chain, or
// returns nil when the error is not one.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNotFound
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeValidation
}
