package persist

import (
	"errors"
	"fmt"
)

// ErrMalformed indicates input that cannot be decoded into a valid model.
var ErrMalformed = errors.New("persist: malformed input")

// Error is a persistence failure. It matches both ErrMalformed and its cause
// with errors.Is.
type Error struct {
	Op  string // "decode-yaml", "encode-binary", ...
	Err error
}

// Error implements error.
func (e *Error) Error() string { return fmt.Sprintf("persist: %s: %v", e.Op, e.Err) }

// Unwrap returns ErrMalformed and the cause.
func (e *Error) Unwrap() []error { return []error{ErrMalformed, e.Err} }

func fail(op string, err error) error { return &Error{Op: op, Err: err} }
