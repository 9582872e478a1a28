// Package errkind provides the closed error-kind taxonomy used across the
// module (spec.md §7): OutOfBounds, InvalidState, InvalidProtocol,
// PayloadTooLarge, Io, and MalformedSequence. Errors are represented as a
// small Go error type wrapping one of these kinds, rather than as
// exceptions, with result-type chaining via the standard errors package.
package errkind

import (
	"errors"
	"fmt"
)

// Kind identifies one of the closed set of error categories.
type Kind int

const (
	// OutOfBounds: a buffer coordinate past its limit. Reported locally;
	// the operation is a no-op from the caller's point of view.
	OutOfBounds Kind = iota
	// InvalidState: e.g. a resource already initialized. Surfaced to the
	// caller.
	InvalidState
	// InvalidProtocol: handshake magic/version mismatch. Closes the
	// connection.
	InvalidProtocol
	// PayloadTooLarge: a length prefix exceeds the configured limit.
	// Closes the connection.
	PayloadTooLarge
	// Io: an underlying read/write error. Surfaced as an event, then the
	// source is closed.
	Io
	// MalformedSequence: never surfaced to the caller; dropped silently,
	// the parser returns to its ground state.
	MalformedSequence
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "OutOfBounds"
	case InvalidState:
		return "InvalidState"
	case InvalidProtocol:
		return "InvalidProtocol"
	case PayloadTooLarge:
		return "PayloadTooLarge"
	case Io:
		return "Io"
	case MalformedSequence:
		return "MalformedSequence"
	default:
		return "Unknown"
	}
}

// Error is a typed error carrying one of the Kind values plus context.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New constructs an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an Error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to the cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a sentinel for the same Kind, so callers can
// do errors.Is(err, errkind.ErrOutOfBounds).
func (e *Error) Is(target error) bool {
	var sentinel *sentinelError
	if errors.As(target, &sentinel) {
		return e.Kind == sentinel.kind
	}
	return false
}

type sentinelError struct{ kind Kind }

func (s *sentinelError) Error() string { return s.kind.String() }

// Sentinels usable with errors.Is.
var (
	ErrOutOfBounds       error = &sentinelError{OutOfBounds}
	ErrInvalidState      error = &sentinelError{InvalidState}
	ErrInvalidProtocol   error = &sentinelError{InvalidProtocol}
	ErrPayloadTooLarge   error = &sentinelError{PayloadTooLarge}
	ErrIo                error = &sentinelError{Io}
	ErrMalformedSequence error = &sentinelError{MalformedSequence}
)

// Of returns the Kind of err if it is (or wraps) an *Error, and ok=false
// otherwise.
func Of(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
