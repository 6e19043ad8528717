package table

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xfield"
)

// Constraint represents a constraint over a single extended row.
// It is satisfied when the evaluator returns zero.
type Constraint struct {
	// Name for diagnostics
	Name string

	// Degree of this constraint polynomial
	Degree int

	// Evaluator takes a full-width extended row and returns the
	// constraint value
	Evaluator func(row []xfield.Element) xfield.Element
}

// TransitionConstraint represents a constraint over two consecutive
// extended rows. It is satisfied when the evaluator returns zero.
type TransitionConstraint struct {
	// Name for diagnostics
	Name string

	// Degree of this constraint polynomial
	Degree int

	// Evaluator takes the current and next extended rows and returns the
	// constraint value
	Evaluator func(current, next []xfield.Element) xfield.Element
}

// BaseTransitionConstraint represents a constraint over two consecutive
// base-field rows, before extension. It is satisfied when the evaluator
// returns zero.
type BaseTransitionConstraint struct {
	// Name for diagnostics
	Name string

	// Degree of this constraint polynomial
	Degree int

	// Evaluator takes the current and next base rows and returns the
	// constraint value
	Evaluator func(current, next []field.Element) field.Element
}
