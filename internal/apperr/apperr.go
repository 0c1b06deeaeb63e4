package apperr

import (
	"errors"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeBadRequest     ErrorType = "BadRequest"
	ErrorTypeUnauthorized   ErrorType = "Unauthorized"
	ErrorTypeInvalidDate    ErrorType = "InvalidDate"
	ErrorTypeInvalidYear    ErrorType = "InvalidYear"
	ErrorTypeInvalidMonth   ErrorType = "InvalidMonth"
	ErrorTypeInvalidFormat  ErrorType = "InvalidFormat"
	ErrorTypeNotFound       ErrorType = "NotFound"
	ErrorTypeUpstream       ErrorType = "Upstream"
	ErrorTypeInternalServer ErrorType = "InternalServer"
)

type AppError struct {
	Type    ErrorType
	Message string
}

func (e AppError) Error() string {
	return e.Message
}

// StatusCode maps the error type to an HTTP status
func (e AppError) StatusCode() int {
	switch e.Type {
	case ErrorTypeInvalidDate, ErrorTypeInvalidYear, ErrorTypeInvalidMonth, ErrorTypeInvalidFormat, ErrorTypeBadRequest:
		return http.StatusBadRequest
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError with specified type and message
func NewAppError(errorType ErrorType, message string) AppError {
	return AppError{
		Type:    errorType,
		Message: message,
	}
}

// TypeOf returns the type of an AppError anywhere in err's chain,
// or ErrorTypeInternalServer if there is none.
func TypeOf(err error) ErrorType {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternalServer
}
