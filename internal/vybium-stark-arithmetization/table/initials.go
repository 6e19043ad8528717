package table

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xfield"
)

// AllInitials holds the per-table, single-use random seeds the prover picks
// to blind the running arguments for zero-knowledge. One scalar per declared
// running argument. They are not secret once boundary constraints are
// checked and may be disclosed as part of the proof transcript, but each set
// is valid for exactly one proof.
type AllInitials struct {
	JumpStack JumpStackTableInitials
}

// JumpStackTableInitials seeds the jump stack table's running arguments
type JumpStackTableInitials struct {
	// ProcessorPermInitial seeds the running product of the permutation
	// argument with the processor table
	ProcessorPermInitial xfield.Element
}

// AllTerminals holds the terminal accumulator values each table reports
// after extension. The cross-table equality checks compare a table's
// terminal against the one its counterpart computed independently.
type AllTerminals struct {
	JumpStack JumpStackTableTerminals
}

// JumpStackTableTerminals carries the jump stack table's terminal
// accumulators
type JumpStackTableTerminals struct {
	// ProcessorPermTerminal is the final value of the running product
	// against the processor table
	ProcessorPermTerminal xfield.Element
}

// NewRandomInitials draws fresh initials from the system's entropy source.
// Called once per proof.
func NewRandomInitials() (*AllInitials, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("failed to draw initials seed: %w", err)
	}
	return SampleInitials(seed), nil
}

// SampleInitials expands a seed into the full set of initials. Used directly
// in tests where determinism matters; proofs go through NewRandomInitials.
func SampleInitials(seed []byte) *AllInitials {
	shake := sha3.NewShake256()
	shake.Write([]byte("vybium-arithmetization-initials"))
	shake.Write(seed)

	scalars := sampleElements(shake, 1)
	return &AllInitials{
		JumpStack: JumpStackTableInitials{
			ProcessorPermInitial: scalars[0],
		},
	}
}
