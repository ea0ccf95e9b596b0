package adapter

import (
	"fmt"
	"strings"
)

// unsupportedOperationError names the missing capability so the caller can
// report exactly what the adapter lacks.
type unsupportedOperationError struct{ cap Capability }

func (e unsupportedOperationError) Error() string {
	return "operation not supported by adapter: " + string(e.cap)
}

// ErrUnsupportedOperation constructs an UnsupportedOperation error for the
// given capability.
func ErrUnsupportedOperation(c Capability) error { return unsupportedOperationError{cap: c} }

// IsUnsupportedOperation reports whether err indicates a missing capability.
func IsUnsupportedOperation(err error) bool {
	_, ok := err.(unsupportedOperationError)
	return ok
}

// MissingCapability returns the capability named by an UnsupportedOperation
// error.
func MissingCapability(err error) (Capability, bool) {
	e, ok := err.(unsupportedOperationError)
	if !ok {
		return "", false
	}
	return e.cap, true
}

// partialDataError lists the data variables that are absent or short of
// their declared size.
type partialDataError struct{ vars []string }

func (e partialDataError) Error() string {
	return "partial data binding not supported, full batch required for: " + strings.Join(e.vars, ", ")
}

// ErrUnsupportedPartialData constructs an UnsupportedPartialData error
// naming the incomplete variables.
func ErrUnsupportedPartialData(vars ...string) error { return partialDataError{vars: vars} }

// IsUnsupportedPartialData reports whether err indicates a partial data
// binding handed to a full-batch-only variant.
func IsUnsupportedPartialData(err error) bool {
	_, ok := err.(partialDataError)
	return ok
}

// constructionError wraps a failure during adapter setup, distinct from
// runtime evaluation failures.
type constructionError struct {
	source string
	err    error
}

func (e constructionError) Error() string {
	return fmt.Sprintf("adapter construction failed (%s): %v", e.source, e.err)
}

func (e constructionError) Unwrap() error { return e.err }

// ErrConstructionFailed constructs an AdapterConstructionFailed error.
// source identifies what was being constructed (a file path, an inline
// program, a variant name).
func ErrConstructionFailed(source string, err error) error {
	return constructionError{source: source, err: err}
}

// IsConstructionFailed reports whether err indicates an adapter setup
// failure.
func IsConstructionFailed(err error) bool {
	_, ok := err.(constructionError)
	return ok
}
