package future

import (
	"errors"
	"fmt"
)

var (
	// ErrNilFailure replaces a nil error passed to Promise.Fail
	ErrNilFailure = errors.New("promise failed without a reason")

	// ErrServiceClosed is returned for work submitted after Close
	ErrServiceClosed = errors.New("background service closed")
)

// WorkPanicError carries a panic recovered from background or async work
type WorkPanicError struct {
	Label string
	Value any
	Stack []byte
}

// Error implements the error interface
func (e *WorkPanicError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s: work panicked: %v", e.Label, e.Value)
	}
	return fmt.Sprintf("work panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error
func (e *WorkPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
