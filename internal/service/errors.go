package service

import "errors"

// Error kinds. Anything that is not one of these is an upstream failure.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// Error carries a client facing message for one of the error kinds.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }
func (e *Error) Kind() error   { return e.kind }

func Invalid(msg string) error   { return &Error{kind: ErrValidation, msg: msg} }
func Forbidden(msg string) error { return &Error{kind: ErrForbidden, msg: msg} }
func NotFound(msg string) error  { return &Error{kind: ErrNotFound, msg: msg} }
