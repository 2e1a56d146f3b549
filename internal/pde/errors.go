package pde

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the solver packages matches exactly
// one of them.
var (
	// ErrConfiguration indicates invalid grid, condition or solver input.
	ErrConfiguration = errors.New("pde: invalid configuration")

	// ErrState indicates an operation attempted before its dependencies
	// (grid, field) were established.
	ErrState = errors.New("pde: required state not established")

	// ErrIO indicates a result could not be written or read back.
	ErrIO = errors.New("pde: result persistence failed")
)

// Error wraps a failure with the operation that raised it.
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg += ": " + e.Err.Error()
		}
	}
	if e.Op == "" {
		return fmt.Sprintf("%v: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Configf returns a configuration error raised by op.
func Configf(op, format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Statef returns a state error raised by op.
func Statef(op, format string, args ...any) error {
	return &Error{Kind: ErrState, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// IOError wraps err as a persistence failure of op on path.
func IOError(op, path string, err error) error {
	return &Error{Kind: ErrIO, Op: op, Msg: path, Err: err}
}
