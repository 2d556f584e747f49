// internal/services/errors.go
package services

import (
	"fmt"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
	KindPermission ErrorKind = "permission"
)

// Error is a recoverable failure the caller can show to the client. Key is
// an i18n message key, Args its format arguments.
type Error struct {
	Kind  ErrorKind
	Key   string
	Args  []interface{}
	Field string
	Err   error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrPermission = &Error{Kind: KindPermission}
)

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Key != "" {
		msg += ": " + e.Key
	}
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Key == "" || t.Key == e.Key)
}

func validationError(field, key string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Field: field, Key: key, Args: args}
}

func conflictError(key string, cause error) *Error {
	return &Error{Kind: KindConflict, Key: key, Err: cause}
}

func notFoundError(key string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Key: key, Args: args}
}

func permissionError(key string) *Error {
	return &Error{Kind: KindPermission, Key: key}
}
