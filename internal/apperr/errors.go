// Package apperr defines the uniform error taxonomy shared by every layer
// of the server: generation, the wire codec, the session engine and the
// lobby all report failures through the same small set of kinds so that
// they can be serialized onto the wire without inventing ad hoc error
// shapes per package.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies which of the fixed error categories a Error belongs to.
type Kind int

const (
	// KindInvalidMaze reports a maze generation precondition failure or an
	// on-wire maze that fails structural validation.
	KindInvalidMaze Kind = iota
	// KindTransmission reports an I/O or framing failure. Always fatal for
	// the affected connection.
	KindTransmission
	// KindSerializer reports a JSON encode/decode failure. Fatal for the
	// message being processed.
	KindSerializer
	// KindAlreadyConnected reports a second InitPlayer for a player id whose
	// channel is currently present.
	KindAlreadyConnected
	// KindUnexpectedParameter reports a semantically invalid message for the
	// receiver's current state.
	KindUnexpectedParameter
	// KindOther is the catch-all for miscellaneous and unwrapped foreign
	// errors.
	KindOther
)

// String renders the kind the way it appears on the wire.
func (k Kind) String() string {
	switch k {
	case KindInvalidMaze:
		return "InvalidMaze"
	case KindTransmission:
		return "Transmission"
	case KindSerializer:
		return "Serializer"
	case KindAlreadyConnected:
		return "AlreadyConnected"
	case KindUnexpectedParameter:
		return "UnexpectedParameter"
	case KindOther:
		return "Other"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Error is the single error type propagated across package boundaries and
// serialized to clients. Msg is empty for kinds that carry no payload
// (AlreadyConnected).
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.err
}

// New builds a Error of the given kind with a message and no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds a Error of the given kind around a lower-level cause.
func Wrap(kind Kind, cause error) *Error {
	if cause == nil {
		return &Error{Kind: kind}
	}
	return &Error{Kind: kind, Msg: cause.Error(), err: cause}
}

// InvalidMaze reports a maze generation or validation failure.
func InvalidMaze(format string, args ...any) *Error {
	return New(KindInvalidMaze, fmt.Sprintf(format, args...))
}

// Transmission wraps an I/O failure on a connection.
func Transmission(cause error) *Error {
	return Wrap(KindTransmission, cause)
}

// Serializer wraps a JSON encode/decode failure.
func Serializer(cause error) *Error {
	return Wrap(KindSerializer, cause)
}

// AlreadyConnected reports a duplicate InitPlayer for a present channel.
func AlreadyConnected() *Error {
	return New(KindAlreadyConnected, "")
}

// UnexpectedParameter reports a message that is invalid for the current
// session state, naming what was expected instead.
func UnexpectedParameter(msg string) *Error {
	return New(KindUnexpectedParameter, msg)
}

// Other wraps any error that does not fit a more specific kind.
func Other(cause error) *Error {
	return Wrap(KindOther, cause)
}

// As reports whether err (or something it wraps) is an *Error, returning it.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
