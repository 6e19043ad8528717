package table

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xfield"
	arith "github.com/vybium/vybium-stark-arithmetization/pkg/vybium-stark-arithmetization"
)

// ChallengeID names one verifier-derived random scalar. The name→index
// mapping is part of the protocol: prover and verifier must use identical
// indexing within one proof session.
type ChallengeID int

const (
	// JumpStackProcessorPermRowWeight combines two consecutive values of
	// the jump stack table's permutation column against the processor table
	JumpStackProcessorPermRowWeight ChallengeID = iota

	// JumpStackClkWeight condenses the clock column into the compressed row
	JumpStackClkWeight

	// JumpStackCiWeight condenses the current-instruction column
	JumpStackCiWeight

	// JumpStackJspWeight condenses the jump stack pointer column
	JumpStackJspWeight

	// JumpStackJsoWeight condenses the jump stack origin column
	JumpStackJsoWeight

	// JumpStackJsdWeight condenses the jump stack destination column
	JumpStackJsdWeight

	// NumChallenges is the fixed challenge count of one proof session
	NumChallenges
)

// String returns the name of the challenge
func (id ChallengeID) String() string {
	switch id {
	case JumpStackProcessorPermRowWeight:
		return "jumpstack_processor_perm_row_weight"
	case JumpStackClkWeight:
		return "jumpstack_clk_weight"
	case JumpStackCiWeight:
		return "jumpstack_ci_weight"
	case JumpStackJspWeight:
		return "jumpstack_jsp_weight"
	case JumpStackJsoWeight:
		return "jumpstack_jso_weight"
	case JumpStackJsdWeight:
		return "jumpstack_jsd_weight"
	default:
		return "unknown_challenge"
	}
}

// AllChallenges is the fixed, named set of verifier-derived random scalars
// shared read-only across all tables in one proof session. It is passed
// explicitly into extension and constraint evaluation, never stored as
// ambient global state, so multiple proof sessions can proceed concurrently
// in one process.
type AllChallenges struct {
	weights [NumChallenges]xfield.Element
}

// NewAllChallenges builds the challenge set from the scalars sampled by the
// Fiat-Shamir transcript, in ChallengeID order
func NewAllChallenges(scalars []xfield.Element) (*AllChallenges, error) {
	if len(scalars) != int(NumChallenges) {
		return nil, arith.NewShapeMismatch("AllChallenges", int(NumChallenges), len(scalars), "challenge count")
	}
	ch := &AllChallenges{}
	copy(ch.weights[:], scalars)
	return ch, nil
}

// Get returns the challenge with the given name
func (c *AllChallenges) Get(id ChallengeID) xfield.Element {
	return c.weights[id]
}

// JumpStack returns the jump stack table's view of the challenge set
func (c *AllChallenges) JumpStack() JumpStackTableChallenges {
	return JumpStackTableChallenges{
		ProcessorPermRowWeight: c.weights[JumpStackProcessorPermRowWeight],
		ClkWeight:              c.weights[JumpStackClkWeight],
		CiWeight:               c.weights[JumpStackCiWeight],
		JspWeight:              c.weights[JumpStackJspWeight],
		JsoWeight:              c.weights[JumpStackJsoWeight],
		JsdWeight:              c.weights[JumpStackJsdWeight],
	}
}

// JumpStackTableChallenges names the challenges the jump stack table
// consumes
type JumpStackTableChallenges struct {
	// ProcessorPermRowWeight is the indeterminate of the permutation
	// argument with the processor table
	ProcessorPermRowWeight xfield.Element

	// Weights for condensing part of a row into a single scalar
	ClkWeight xfield.Element
	CiWeight  xfield.Element
	JspWeight xfield.Element
	JsoWeight xfield.Element
	JsdWeight xfield.Element
}

// SampleAllChallenges derives the full challenge set deterministically from
// a transcript seed. Prover and verifier run this on the same seed and
// obtain the same scalars.
func SampleAllChallenges(seed []byte) *AllChallenges {
	shake := sha3.NewShake256()
	shake.Write([]byte("vybium-arithmetization-challenges"))
	shake.Write(seed)

	ch := &AllChallenges{}
	scalars := sampleElements(shake, int(NumChallenges))
	copy(ch.weights[:], scalars)
	return ch
}

// sampleElements reads extension-field scalars from an extendable-output
// hash, one base-field coefficient per 8-byte chunk
func sampleElements(shake sha3.ShakeHash, n int) []xfield.Element {
	buf := make([]byte, 8)
	next := func() field.Element {
		// ShakeHash reads never fail
		_, _ = shake.Read(buf)
		return field.New(binary.LittleEndian.Uint64(buf) % field.P)
	}

	elements := make([]xfield.Element, n)
	for i := range elements {
		elements[i] = xfield.New(next(), next(), next())
	}
	return elements
}
