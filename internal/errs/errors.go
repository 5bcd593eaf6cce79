// internal/errs/errors.go
// Package errs holds the error taxonomy shared by services and the HTTP boundary.
package errs

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindConflict           Kind = "CONFLICT"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindNotFound           Kind = "NOT_FOUND"
	KindUpload             Kind = "UPLOAD_ERROR"
	KindRateLimited        Kind = "RATE_LIMITED"
	KindInternal           Kind = "INTERNAL_ERROR"
)

var statusByKind = map[Kind]int{
	KindValidation:         http.StatusBadRequest,
	KindConflict:           http.StatusBadRequest,
	KindInvalidCredentials: http.StatusBadRequest,
	KindUnauthorized:       http.StatusUnauthorized,
	KindNotFound:           http.StatusNotFound,
	KindUpload:             http.StatusInternalServerError,
	KindRateLimited:        http.StatusTooManyRequests,
	KindInternal:           http.StatusInternalServerError,
}

// Error is a classified failure. Key is an i18n message key formatted with Args;
// Details carries field-level information for validation failures.
type Error struct {
	Kind    Kind
	Key     string
	Args    []interface{}
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Key + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Key
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status for the error kind.
func (e *Error) Status() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WithArgs sets the arguments used to format the message for Key.
func (e *Error) WithArgs(args ...interface{}) *Error {
	e.Args = args
	return e
}

func New(kind Kind, key string) *Error {
	return &Error{Kind: kind, Key: key}
}

func Wrap(kind Kind, key string, err error) *Error {
	return &Error{Kind: kind, Key: key, Err: err}
}

func Validation(key string, details interface{}) *Error {
	return &Error{Kind: KindValidation, Key: key, Details: details}
}

func Conflict(key string) *Error {
	return New(KindConflict, key)
}

func InvalidCredentials(key string) *Error {
	return New(KindInvalidCredentials, key)
}

func Unauthorized(key string) *Error {
	return New(KindUnauthorized, key)
}

func NotFound(key string) *Error {
	return New(KindNotFound, key)
}

func Upload(key string, err error) *Error {
	return Wrap(KindUpload, key, err)
}

func Internal(err error) *Error {
	return Wrap(KindInternal, "error.internal", err)
}

// As extracts the classified error from err, converting anything unclassified
// into an internal error.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
