// Package grasperrors defines the typed error-kind taxonomy the grasp
// analysis core reports through: Configuration, Validation, and Runtime,
// wrapping github.com/pkg/errors so call sites can distinguish kinds with
// errors.As instead of string matching. An Advisory is a fourth kind that
// never becomes an error at all; it is logged and processing continues.
package grasperrors

import "github.com/pkg/errors"

// Configuration reports a missing or misconfigured external collaborator —
// a missing planner, a missing hull kernel, an unknown command keyword.
// No state is mutated before a Configuration error is returned.
type Configuration struct {
	cause error
}

func (e *Configuration) Error() string { return "configuration: " + e.cause.Error() }

// Unwrap exposes the wrapped cause for errors.Is/errors.As chains.
func (e *Configuration) Unwrap() error { return e.cause }

// NewConfiguration wraps msg (formatted per errors.Errorf rules) as a
// Configuration error.
func NewConfiguration(format string, args ...interface{}) error {
	return &Configuration{cause: errors.Errorf(format, args...)}
}

// Validation reports a caller-supplied value that violates a documented
// contract: wrong DOF count, a points length that isn't a multiple of dim,
// a triangulation request with dim != 3, too few wrenches for force
// closure.
type Validation struct {
	cause error
}

func (e *Validation) Error() string { return "validation: " + e.cause.Error() }

// Unwrap exposes the wrapped cause for errors.Is/errors.As chains.
func (e *Validation) Unwrap() error { return e.cause }

// NewValidation wraps msg as a Validation error.
func NewValidation(format string, args ...interface{}) error {
	return &Validation{cause: errors.Errorf(format, args...)}
}

// Runtime reports a failure in an external collaborator once a request is
// already underway: a nonzero hull-kernel exit, a planner that fails to
// produce a trajectory. Ray-cast misses are not Runtime errors; they are
// advisory (see Advisory below).
type Runtime struct {
	cause error
}

func (e *Runtime) Error() string { return "runtime: " + e.cause.Error() }

// Unwrap exposes the wrapped cause for errors.Is/errors.As chains.
func (e *Runtime) Unwrap() error { return e.cause }

// NewRuntime wraps msg as a Runtime error.
func NewRuntime(format string, args ...interface{}) error {
	return &Runtime{cause: errors.Errorf(format, args...)}
}

// Wrap attaches additional context to an existing error while preserving
// its Configuration/Validation/Runtime kind for a later errors.As.
func Wrap(err error, msg string) error {
	switch e := err.(type) {
	case *Configuration:
		return &Configuration{cause: errors.Wrap(e.cause, msg)}
	case *Validation:
		return &Validation{cause: errors.Wrap(e.cause, msg)}
	case *Runtime:
		return &Runtime{cause: errors.Wrap(e.cause, msg)}
	default:
		return errors.Wrap(err, msg)
	}
}
