// Package vybiumstarkarithmetization exposes the public error surface of the
// arithmetization layer.
package vybiumstarkarithmetization

import "fmt"

// ErrorCode classifies an arithmetization error
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrShapeMismatch represents a trace width or initials count that
	// disagrees with a table's declared shape
	ErrShapeMismatch

	// ErrDomainMismatch represents prover and verifier deriving different
	// trace-domain generators for the same padded height, or an evaluation
	// domain that cannot carry a table's columns
	ErrDomainMismatch

	// ErrInvalidUsage represents a lifecycle violation: padding an extended
	// table, extending a table twice, or producing codewords before extension
	ErrInvalidUsage
)

// ArithmetizationError represents a fatal arithmetization defect.
//
// Every error of this kind signals a protocol or usage defect, never a
// transient fault: it must abort proof construction and must not be retried
// or absorbed.
type ArithmetizationError struct {
	Code    ErrorCode
	Table   string
	Message string
	Cause   error
}

// Error returns the error message
func (e *ArithmetizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vybium-stark-arithmetization error [%d] in %s: %s (caused by: %v)",
			e.Code, e.Table, e.Message, e.Cause)
	}
	return fmt.Sprintf("vybium-stark-arithmetization error [%d] in %s: %s", e.Code, e.Table, e.Message)
}

// Unwrap returns the cause of the error
func (e *ArithmetizationError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *ArithmetizationError) Is(target error) bool {
	t, ok := target.(*ArithmetizationError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewShapeMismatch builds a ShapeMismatch error carrying the table name and
// the expected vs. actual sizes
func NewShapeMismatch(table string, expected, actual int, what string) *ArithmetizationError {
	return &ArithmetizationError{
		Code:    ErrShapeMismatch,
		Table:   table,
		Message: fmt.Sprintf("%s: expected %d, got %d", what, expected, actual),
	}
}

// NewDomainMismatch builds a DomainMismatch error carrying the table name and
// the disagreeing values
func NewDomainMismatch(table string, detail string) *ArithmetizationError {
	return &ArithmetizationError{
		Code:    ErrDomainMismatch,
		Table:   table,
		Message: detail,
	}
}

// NewInvalidUsage builds an InvalidUsage error carrying the table name and
// the violated lifecycle rule
func NewInvalidUsage(table string, detail string) *ArithmetizationError {
	return &ArithmetizationError{
		Code:    ErrInvalidUsage,
		Table:   table,
		Message: detail,
	}
}
