package lambda

import (
	"errors"
	"fmt"
)

// Envelope codec errors
var (
	// ErrMissingBody is returned when the envelope carries no body
	ErrMissingBody = errors.New("missing body")

	// ErrEncoding is returned when the body is not valid UTF-8 text
	ErrEncoding = errors.New("body is not valid text")

	// ErrDecode is returned when the JSON body does not match the target type
	ErrDecode = errors.New("body does not match target type")

	// ErrSerialization is returned when a value cannot be serialized to JSON
	ErrSerialization = errors.New("value cannot be serialized")

	// ErrValidation is returned when a decoded value fails struct validation
	ErrValidation = errors.New("validation error")
)

// CodecError records the operation and cause of an envelope codec failure
type CodecError struct {
	Op    string // Operation that failed
	Type  string // Target or source Go type
	Kind  error  // One of the sentinel errors above
	Cause error  // Underlying error, if any
}

// Error implements the error interface
func (e *CodecError) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Type != "" {
		msg = fmt.Sprintf("%s: %s (%s)", e.Op, e.Kind, e.Type)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap allows errors.Is to match both the kind and the cause
func (e *CodecError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newCodecError(op string, typ string, kind, cause error) *CodecError {
	return &CodecError{Op: op, Type: typ, Kind: kind, Cause: cause}
}
