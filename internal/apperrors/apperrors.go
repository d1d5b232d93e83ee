package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping and control flow.
type Kind int

const (
	Internal Kind = iota
	Invalid
	Unauthorized
	Forbidden
	NotFound
	Conflict
	AlreadyResolved
	InsufficientBalance
	Cancelled
)

// Error is a kinded error. Msg is what the client sees; Err is the wrapped
// cause, if any.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new error of the given kind.
func E(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Ef creates a new error of the given kind with a formatted message.
func Ef(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap wraps a cause under the given kind. A context cancellation or deadline
// anywhere in the chain overrides the kind: the client went away, the
// operation did not fail.
func Wrap(kind Kind, msg string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = Cancelled
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the outermost kinded error in the chain, or
// Internal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Cancelled
	}
	return Internal
}

// IsCancelled reports whether the error stems from the client abandoning the
// request.
func IsCancelled(err error) bool {
	return KindOf(err) == Cancelled
}

// StatusClientClosedRequest is the nginx convention for a client that closed
// the connection before the response was written.
const StatusClientClosedRequest = 499

// HTTPStatus maps an error kind to its HTTP response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Invalid:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict, AlreadyResolved:
		return http.StatusConflict
	case InsufficientBalance:
		return http.StatusUnprocessableEntity
	case Cancelled:
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}
