package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	NotFound
	Conflict
	InvalidCredentials
	ValidationFailed
	RateLimited
	// Forbidden is an authenticated caller acting on someone else's data.
	Forbidden
)

// Error carries a kind and a message that is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches on kind, so errors.Is(err, apperr.ErrNotFound) works for every
// not-found error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) Status() int {
	return StatusOf(e.Kind)
}

func StatusOf(k Kind) int {
	switch k {
	case NotFound:
		return http.StatusNotFound
	case Conflict, Forbidden:
		return http.StatusForbidden
	case InvalidCredentials, ValidationFailed:
		return http.StatusBadRequest
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrNotFound           = &Error{Kind: NotFound, Message: "not found"}
	ErrConflict           = &Error{Kind: Conflict, Message: "conflict"}
	ErrInvalidCredentials = &Error{Kind: InvalidCredentials, Message: "Invalid credentials"}
	ErrValidation         = &Error{Kind: ValidationFailed, Message: "validation failed"}
	ErrRateLimited        = &Error{Kind: RateLimited, Message: "Too many requests, try again later"}
	ErrForbidden          = &Error{Kind: Forbidden, Message: "forbidden"}
)

func NewNotFound(msg string) *Error {
	return &Error{Kind: NotFound, Message: msg}
}

func NewConflict(msg string) *Error {
	return &Error{Kind: Conflict, Message: msg}
}

func NewForbidden(msg string) *Error {
	return &Error{Kind: Forbidden, Message: msg}
}

func NewValidation(msg string, fields map[string]string) *Error {
	return &Error{Kind: ValidationFailed, Message: msg, Fields: fields}
}

func NewInternal(msg string, cause error) *Error {
	return &Error{Kind: Internal, Message: msg, cause: cause}
}

// Wrap attaches a cause to a public error without changing its kind.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
