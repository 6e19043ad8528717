// Package table implements the arithmetization tables of the VM: base traces
// with power-of-two padding, prover/verifier construction, the randomized
// running-argument extension, extended-table constraint sets, and the
// low-degree extender that turns extended columns into codewords.
package table

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// TableID uniquely identifies each table in the multi-table architecture
type TableID int

const (
	// ProcessorTableID records the main execution trace
	ProcessorTableID TableID = iota

	// OperationalStackTableID tracks stack operations
	OperationalStackTableID

	// RAMTableID ensures memory consistency
	RAMTableID

	// JumpStackTableID tracks the call/return address stack
	JumpStackTableID

	// HashTableID records cryptographic operations
	HashTableID

	// U32TableID handles 32-bit operations
	U32TableID

	// ProgramTableID provides program attestation
	ProgramTableID

	// CascadeTableID optimizes lookup arguments
	CascadeTableID

	// LookupTableID stores precomputed values
	LookupTableID
)

// String returns the name of the table
func (id TableID) String() string {
	switch id {
	case ProcessorTableID:
		return "Processor"
	case OperationalStackTableID:
		return "OperationalStack"
	case RAMTableID:
		return "RAM"
	case JumpStackTableID:
		return "JumpStack"
	case HashTableID:
		return "Hash"
	case U32TableID:
		return "U32"
	case ProgramTableID:
		return "Program"
	case CascadeTableID:
		return "Cascade"
	case LookupTableID:
		return "Lookup"
	default:
		return "Unknown"
	}
}

// Table is the contract every concrete base table implements.
//
// A table is constructed either by the prover (holding a real execution
// trace) or by the verifier (holding shape only); both roles answer every
// query below identically for the same shape. Past construction a table is
// immutable except for the single padding step.
type Table interface {
	// Name returns a diagnostic identifier
	Name() string

	// Width returns the declared base column width
	Width() int

	// Height returns the current number of trace rows
	Height() int

	// PaddedHeight returns the power-of-two height (0 for a table that
	// never executes)
	PaddedHeight() int

	// NumRandomizers returns the count of zero-knowledge randomizer rows
	NumRandomizers() int

	// Omicron returns the generator of the trace domain, a root of unity
	// of order exactly PaddedHeight
	Omicron() field.Element

	// Pad extends the trace in place until its height is a power of two,
	// cloning the last row and overwriting its clock column. A no-op on an
	// empty trace and on an already-padded one.
	Pad() error

	// BaseTransitionConstraints returns the ordered local constraints over
	// two adjacent rows. The set depends only on the declared shape, never
	// on trace data, and may be empty for tables whose discipline is
	// certified purely through a cross-table running argument.
	BaseTransitionConstraints() []BaseTransitionConstraint
}

// ExtensionTable is the contract every extended table implements.
//
// The three constraint sets are ordered; ordering matters only for
// diagnostics.
type ExtensionTable interface {
	// Name returns a diagnostic identifier
	Name() string

	// ExtBoundaryConstraints returns constraints holding only at row 0,
	// e.g. the running argument's seed relation against its initial
	ExtBoundaryConstraints(challenges *AllChallenges) []Constraint

	// ExtTransitionConstraints returns constraints holding on every
	// adjacent row pair, extending the base transition constraints with
	// the accumulator-update relations
	ExtTransitionConstraints(challenges *AllChallenges) []TransitionConstraint

	// ExtTerminalConstraints returns constraints holding only at the last
	// row: the cross-table equality of terminal accumulators
	ExtTerminalConstraints(challenges *AllChallenges, terminals *AllTerminals) []Constraint
}
