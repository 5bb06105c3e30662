// Package apperr defines the error taxonomy shared by the service and
// HTTP layers: a stable kind plus a human-readable message. Handlers
// map kinds to status codes with errors.As.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Validation   Kind = iota + 1 // malformed or missing input, no side effects
	NotFound                     // referenced entity absent
	Forbidden                    // authenticated but not permitted
	Unauthorized                 // no or invalid credential where required
	Storage                      // persistence failure, unit of work rolled back
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the kind to its transport status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...interface{}) *Error {
	return &Error{Kind: Forbidden, Message: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...interface{}) *Error {
	return &Error{Kind: Unauthorized, Message: fmt.Sprintf(format, args...)}
}

// Storagef wraps a persistence failure, keeping the cause for logs
// while the message stays safe to return to callers.
func Storagef(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: Storage, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind carried by err, or 0 for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}
