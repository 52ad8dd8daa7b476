package errors

import (
	"errors"
	"net/http"

	"bikerental/internal/service"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// FromService maps a service-layer error onto an HTTP status. Anything
// unrecognized is treated as a transient storage failure and reported
// as a 500 without leaking internals.
func FromService(err error) *HTTPError {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrBikeNotFound),
		errors.Is(err, service.ErrBookingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, service.ErrAlreadyStarted):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error")
	}
}
