package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/cookiestore/core/handler"
)

type statusCode interface {
	StatusCode() int
}

// convertToHTTPError maps any error to an HTTPError, keeping the cause in Details.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = ErrInternalServerError
	}

	return baseErr.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := convertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as JSON. Internal causes are not exposed
// for 5xx statuses.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := convertToHTTPError(err)
	if httpErr.Status >= http.StatusInternalServerError {
		httpErr.Details = nil
	}
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
