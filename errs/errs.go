// Package errs defines the error shapes returned to API clients.
package errs

import (
	"net/http"
	"strings"
)

// FieldError is a validation problem on a single request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is rendered as the JSON body of every failed request.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewNotFoundError creates a 404 for a missing entity.
func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, nil)
}

// NewBadRequestError creates a 400, used for parameters that parse but name
// something unsupported.
func NewBadRequestError(message string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message, nil)
}

// NewInvalidInputError creates a 422 for bodies or parameters that are
// missing or of the wrong type.
func NewInvalidInputError(message string, fields []FieldError) *HTTPError {
	return newHTTPError(http.StatusUnprocessableEntity, message, fields)
}

// NewInternalServerError creates a 500 carrying only the generic status
// text. The cause is logged, not returned.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
}

func newHTTPError(status int, message string, fields []FieldError) *HTTPError {
	return &HTTPError{
		Code:    CodeFromStatus(status),
		Message: message,
		Status:  status,
		Errors:  fields,
	}
}

// CodeFromStatus turns a status into a stable machine code,
// e.g. 404 -> "NOT_FOUND".
func CodeFromStatus(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
