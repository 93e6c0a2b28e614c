// Package apierror holds the error kinds the HTTP layer knows how to render.
package apierror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Unexpected Kind = iota
	InvalidInput
	TooLarge
	Forbidden
	NotFound
)

const (
	CodeFileTooLarge   = "LIMIT_FILE_SIZE"
	CodeUnexpectedFile = "LIMIT_UNEXPECTED_FILE"
)

// Error is a failure with a client-safe message. Err, when set, is only logged.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	switch e.Kind {
	case InvalidInput, TooLarge:
		return http.StatusBadRequest
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithCode returns a copy of e carrying the machine readable code.
func (e *Error) WithCode(code string) *Error {
	cp := *e
	cp.Code = code
	return &cp
}

// From extracts an *Error from err. Anything else is reported as Unexpected
// with a generic message so internals never reach the client.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Wrap(Unexpected, "Internal Server Error", err)
}
