package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error with an HTTP status attached. Handlers use the status to
// shape the response; services and repos only deal in errors.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a sentinel-style error; compare with errors.Is.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Internal wraps a storage or infrastructure fault. The cause is preserved
// for logs but never leaks into the client-facing message.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal error", Err: err}
}

// StatusOf walks the error chain for an *Error and returns its status,
// defaulting to 500 for untyped errors.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-safe message for err. Untyped errors collapse
// to a generic message so storage details never reach the wire.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal error"
}
