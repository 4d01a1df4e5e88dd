// Package apperror defines the domain error taxonomy shared by the REST and
// MCP surfaces. Handlers translate these into status codes; anything that is
// not one of the typed kinds is treated as an upstream failure.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUpstream covers any failure of the remote Keep service, including
	// synchronize failures. Never retried.
	KindUpstream Kind = iota
	// KindNotFound means the note identifier is absent from the session cache.
	KindNotFound
	// KindForbidden means the modification gate rejected a mutation.
	KindForbidden
	// KindUnavailable means the Keep session could not be established.
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Message: "google keep session unavailable", Err: err}
}

func Upstream(err error) *Error {
	return &Error{Kind: KindUpstream, Message: err.Error(), Err: err}
}

func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return KindUpstream, false
}

func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}

func IsForbidden(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindForbidden
}
