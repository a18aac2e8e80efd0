package arangordf

import (
	"errors"
	"fmt"
)

// Sentinel errors for common engine error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidConfig indicates the provided configuration is invalid or
	// incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGraphNotFound indicates the requested graph or collection does
	// not exist in the store.
	ErrGraphNotFound = errors.New("graph not found")

	// ErrTransformFailed indicates a transformation pass failed. The
	// underlying error is wrapped for additional context.
	ErrTransformFailed = errors.New("transform failed")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a graph or collection was not
	// found.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindTransform represents errors that occur during a transformation
	// pass.
	KindTransform = "transform"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindStorage represents errors surfaced by the backing store.
	KindStorage = "storage"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type Error struct {
	// Op is the operation that failed (e.g. "Engine.RDFToGraphPGT").
	Op string

	// Kind categorizes the error (e.g. KindTransform, KindStorage).
	Kind string

	// Err is the underlying error that caused this error.
	Err error
}

// Error implements the error interface, returning a formatted message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("arangordf: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("arangordf: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and
// errors.As() to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or on another Error's kind and operation.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}
