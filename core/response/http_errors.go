package response

import (
	"maps"
	"net/http"
)

// HTTPError represents a structured error response that implements the error interface.
type HTTPError struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// NewHTTPError creates an internal server error with a custom message.
func NewHTTPError(message string) HTTPError {
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_server_error",
		Message: message,
	}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy of the error with an error cause.
func (e HTTPError) WithError(err error) HTTPError {
	d := maps.Clone(e.Details)
	if d == nil {
		d = map[string]any{}
	}
	d["cause"] = err.Error()
	e.Details = d
	return e
}

func newError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

// Predefined HTTP errors using http.StatusText for default messages.
var (
	ErrBadRequest          = newError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized        = newError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden           = newError(http.StatusForbidden, "forbidden")
	ErrNotFound            = newError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed    = newError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrRequestTimeout      = newError(http.StatusRequestTimeout, "request_timeout")
	ErrConflict            = newError(http.StatusConflict, "conflict")
	ErrUnprocessableEntity = newError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrTooManyRequests     = newError(http.StatusTooManyRequests, "too_many_requests")

	ErrInternalServerError = newError(http.StatusInternalServerError, "internal_server_error")
	ErrNotImplemented      = newError(http.StatusNotImplemented, "not_implemented")
	ErrServiceUnavailable  = newError(http.StatusServiceUnavailable, "service_unavailable")
)

var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusRequestTimeout:      ErrRequestTimeout,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrUnprocessableEntity,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusNotImplemented:      ErrNotImplemented,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
}
