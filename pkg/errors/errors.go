// Package errors defines the coded errors shared by the grid engine, the
// pipeline, the CLI and the HTTP API.
//
// Every failure a caller may want to branch on carries a [Code]. Codes
// group into a [Kind], which decides how the failure surfaces: the HTTP
// status in pkg/httputil and the process exit code in the CLI.
//
//	l, err := engine.Resize(l, "chart", 4, 3)
//	if errors.Is(err, errors.ErrCodeWidgetNotFound) {
//	    ...
//	}
//
// Causes are kept on the chain, so the standard library's errors.Is and
// errors.As still reach them:
//
//	return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeWidgetNotFound Code = "WIDGET_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// The layout was valid but the requested change could not be applied.
	ErrCodeCascadeLimit Code = "CASCADE_LIMIT"
	ErrCodeUnplaceable  Code = "UNPLACEABLE"

	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Kind groups codes by who has to act on the failure.
type Kind int

const (
	KindInternal    Kind = iota // a bug or a backend failure
	KindInvalid                 // malformed input
	KindNotFound                // a named file or widget does not exist
	KindRejected                // well-formed input the engine cannot apply
	KindTimeout                 // deadline exceeded
	KindUnsupported             // feature not available in this build
)

var kinds = map[Code]Kind{
	ErrCodeInvalidInput:   KindInvalid,
	ErrCodeInvalidLayout:  KindInvalid,
	ErrCodeInvalidFormat:  KindInvalid,
	ErrCodeInvalidConfig:  KindInvalid,
	ErrCodeInvalidPath:    KindInvalid,
	ErrCodeNotFound:       KindNotFound,
	ErrCodeWidgetNotFound: KindNotFound,
	ErrCodeFileNotFound:   KindNotFound,
	ErrCodeCascadeLimit:   KindRejected,
	ErrCodeUnplaceable:    KindRejected,
	ErrCodeTimeout:        KindTimeout,
	ErrCodeUnsupported:    KindUnsupported,
}

// Kind reports the group c belongs to. Unknown codes are internal.
func (c Code) Kind() Kind {
	return kinds[c]
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is like [New] but records cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode returns the code of the outermost *Error on err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error on err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// KindOf returns the kind of err's code. Uncoded errors are internal.
func KindOf(err error) Kind {
	return GetCode(err).Kind()
}

// UserMessage returns the message of a coded error without its cause, or
// err.Error() for anything else.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by the request rather than
// by the service.
func IsClientError(err error) bool {
	switch KindOf(err) {
	case KindInvalid, KindNotFound, KindRejected:
		return true
	}
	return false
}

// Exit codes used by the CLI. 1 is a generic failure.
const (
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitRejected = 4
)

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	switch KindOf(err) {
	case KindInvalid:
		return ExitUsage
	case KindNotFound:
		return ExitNotFound
	case KindRejected:
		return ExitRejected
	}
	return ExitFailure
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
