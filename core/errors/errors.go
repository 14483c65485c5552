// Package errors provides error handling for the scrapper.
//
// It re-exports github.com/cockroachdb/errors so every package wraps and
// inspects errors the same way, and declares the sentinels shared between
// the source client, the integration layer and the HTTP handlers.
//
// Usage:
//
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle not found
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// Hints and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinels shared across packages. Wrap them to add context.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates malformed input (unknown kind, bad id).
	ErrInvalidRequest = New("invalid request")

	// ErrServiceUnavailable indicates the remote API or a dependency is down.
	ErrServiceUnavailable = New("service unavailable")

	// ErrTimeout indicates a phase or job deadline elapsed.
	ErrTimeout = New("operation timed out")

	// ErrConflict indicates an existing record blocked a write.
	ErrConflict = New("resource conflict")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequest reports whether err is or wraps ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewInvalidRequest creates an invalid-request error with a formatted message.
func NewInvalidRequest(format string, args ...any) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}

// NewNotFound creates a not-found error with a formatted message.
func NewNotFound(format string, args ...any) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}
