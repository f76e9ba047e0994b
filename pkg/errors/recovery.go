package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is an error built from a recovered panic. gonum signals shape
// violations by panicking, so public entry points convert those panics into
// ordinary errors instead of crashing the caller.
type PanicError struct {
	// PanicValue is the value passed to panic().
	PanicValue interface{}

	// StackTrace is the goroutine stack at the time of recovery.
	StackTrace string

	// Operation names the entry point that recovered the panic.
	Operation string
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.PanicValue.(error); ok {
		return err
	}
	return nil
}

// String provides detailed information including stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError creates a new PanicError for the given operation and panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover converts a panic into an error. Call it with defer and a pointer
// to the named error result:
//
//	func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
//	    defer errors.Recover(&err, "LinearRegression.Fit")
//	    ...
//	}
//
// If the function had already set an error, the panic is reported together
// with it and the original error stays reachable through errors.Is.
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

// SafeExecute runs fn and converts any panic into a PanicError.
//
// Example:
//
//	err := SafeExecute("normal equation", func() error {
//	    return w.SolveVec(&xtx, &xty)
//	})
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
