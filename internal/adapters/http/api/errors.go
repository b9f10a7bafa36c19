package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrLimitExceeded      = errors.New("limit exceeded")
	ErrCapabilityRequired = errors.New("capability required")
	ErrNotFound           = errors.New("not found")
)

// opError ties an operation name to an error kind and an optional cause.
// errors.Is matches both the kind and the cause.
type opError struct {
	op    string
	kind  error
	cause error
}

func (e *opError) Error() string {
	switch {
	case e.kind == nil:
		return fmt.Sprintf("%s: %v", e.op, e.cause)
	case e.cause == nil:
		return fmt.Sprintf("%s: %v", e.op, e.kind)
	default:
		return fmt.Sprintf("%s: %v: %v", e.op, e.kind, e.cause)
	}
}

func (e *opError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.kind != nil {
		out = append(out, e.kind)
	}
	if e.cause != nil {
		out = append(out, e.cause)
	}
	return out
}

// NewKind returns an error of kind raised by op.
func NewKind(op string, kind error) error {
	return &opError{op: op, kind: kind}
}

// WrapKind classifies cause as kind for op.
func WrapKind(op string, kind, cause error) error {
	return &opError{op: op, kind: kind, cause: cause}
}

// Wrap adds op context to cause without a kind.
func Wrap(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &opError{op: op, cause: cause}
}
