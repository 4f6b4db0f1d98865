package salesdash

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrIO        ErrorKind = "io"
	ErrSQL       ErrorKind = "sql"
	ErrSchema    ErrorKind = "schema"
	ErrLoad      ErrorKind = "load"
	ErrNotLoaded ErrorKind = "not_loaded"
	ErrInternal  ErrorKind = "internal"
	ErrConfig    ErrorKind = "config"
	ErrLocked    ErrorKind = "locked"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func LoadError(cause error) *Error {
	return &Error{Kind: ErrLoad, Message: "load records", Cause: cause}
}

func LockedError(path string) *Error {
	return &Error{Kind: ErrLocked, Message: fmt.Sprintf("store is locked by another process: %s", path)}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// ErrInternal when there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrInternal
}

// wrapBackend tags a backend failure with a kind unless it already has one.
func wrapBackend(msg string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return Wrap(ErrInternal, msg, err)
}
