// Package errors provides the error handling utilities for bfte.
//
// This file contains panic recovery helpers. The core never lets a panic
// escape to the host process: Fit and Predict defer Recover so that an
// unexpected gonum panic surfaces as a PanicError instead.

package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is an error created from a recovered panic.
type PanicError struct {
	// PanicValue is the original value passed to panic()
	PanicValue interface{}

	// StackTrace is the stack at the time of recovery
	StackTrace string

	// Operation identifies where the panic was recovered
	Operation string
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.PanicValue.(error); ok {
		return err
	}
	return nil
}

// String includes the stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError creates a PanicError for operation.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover converts a panic into an error. It must be deferred with a
// pointer to the named error result:
//
//	func (lr *LinearRegression) Fit(X mat.Matrix, y mat.Vector) (err error) {
//	    defer Recover(&err, "LinearRegression.Fit")
//	    ...
//	}
//
// An error already assigned to *err is kept and wrapped.
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		panicErr := NewPanicError(operation, r)

		if *err != nil {
			*err = fmt.Errorf("panic in %s: %v (original error: %w)",
				operation, r, *err)
		} else {
			*err = panicErr
		}
	}
}
