package table

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	arith "github.com/vybium/vybium-stark-arithmetization/pkg/vybium-stark-arithmetization"
)

// BaseTable holds one base trace and its declared shape. It backs every
// concrete table kind; the concrete kinds add naming, padding semantics and
// constraint sets on top.
//
// A prover-side table stores the real trace rows; a verifier-side table
// stores an empty matrix and answers every shape query identically.
type BaseTable struct {
	name           string
	width          int
	clockColumn    int
	paddedHeight   int
	numRandomizers int
	omicron        field.Element
	generator      field.Element
	order          int
	matrix         [][]field.Element
}

// newProverBase creates the prover-side view: the padded height is derived
// from the real trace length and the trace is stored.
func newProverBase(
	name string,
	width, clockColumn int,
	generator field.Element,
	order int,
	numRandomizers int,
	matrix [][]field.Element,
) (*BaseTable, error) {
	for i, row := range matrix {
		if len(row) != width {
			return nil, &arith.ArithmetizationError{
				Code:    arith.ErrShapeMismatch,
				Table:   name,
				Message: fmt.Sprintf("trace row %d has width %d, declared base width is %d", i, len(row), width),
			}
		}
	}

	paddedHeight := padHeight(len(matrix))
	omicron, err := deriveOmicron(name, generator, order, paddedHeight)
	if err != nil {
		return nil, err
	}

	return &BaseTable{
		name:           name,
		width:          width,
		clockColumn:    clockColumn,
		paddedHeight:   paddedHeight,
		numRandomizers: numRandomizers,
		omicron:        omicron,
		generator:      generator,
		order:          order,
		matrix:         matrix,
	}, nil
}

// newVerifierBase creates the verifier-side view: the padded height is
// supplied directly (the verifier never sees raw rows before commitments
// open) and the trace is empty. For identical (generator, paddedHeight) this
// derives the same omicron as the prover path.
func newVerifierBase(
	name string,
	width, clockColumn int,
	generator field.Element,
	order int,
	numRandomizers int,
	paddedHeight int,
) (*BaseTable, error) {
	if paddedHeight != 0 && !isPowerOfTwo(paddedHeight) {
		return nil, &arith.ArithmetizationError{
			Code:    arith.ErrShapeMismatch,
			Table:   name,
			Message: fmt.Sprintf("padded height %d is not a power of two", paddedHeight),
		}
	}

	omicron, err := deriveOmicron(name, generator, order, paddedHeight)
	if err != nil {
		return nil, err
	}

	return &BaseTable{
		name:           name,
		width:          width,
		clockColumn:    clockColumn,
		paddedHeight:   paddedHeight,
		numRandomizers: numRandomizers,
		omicron:        omicron,
		generator:      generator,
		order:          order,
		matrix:         [][]field.Element{},
	}, nil
}

// Name returns the diagnostic identifier
func (bt *BaseTable) Name() string {
	return bt.name
}

// Width returns the declared base column width
func (bt *BaseTable) Width() int {
	return bt.width
}

// Height returns the current number of trace rows
func (bt *BaseTable) Height() int {
	return len(bt.matrix)
}

// PaddedHeight returns the power-of-two height (0 for a table that never
// executes)
func (bt *BaseTable) PaddedHeight() int {
	return bt.paddedHeight
}

// NumRandomizers returns the count of zero-knowledge randomizer rows
func (bt *BaseTable) NumRandomizers() int {
	return bt.numRandomizers
}

// Omicron returns the trace-domain generator
func (bt *BaseTable) Omicron() field.Element {
	return bt.omicron
}

// Generator returns the outer-domain generator the table was built from
func (bt *BaseTable) Generator() field.Element {
	return bt.generator
}

// Order returns the order of the outer-domain generator
func (bt *BaseTable) Order() int {
	return bt.order
}

// Row returns one trace row by index
func (bt *BaseTable) Row(i int) []field.Element {
	return bt.matrix[i]
}

// Pad extends the trace in place until its height is a power of two.
//
// Each padding row is a clone of the current last row with its clock column
// overwritten to (height before this append - 1): the machine idles in its
// last state, and idling is by convention a valid transition, so every pair
// of adjacent rows introduced here still satisfies the table's transition
// constraints. An empty trace stays empty; some tables legitimately never
// execute during a given run.
func (bt *BaseTable) Pad() error {
	for len(bt.matrix) > 0 && !isPowerOfTwo(len(bt.matrix)) {
		paddingRow := make([]field.Element, bt.width)
		copy(paddingRow, bt.matrix[len(bt.matrix)-1])
		paddingRow[bt.clockColumn] = field.New(uint64(len(bt.matrix) - 1))
		bt.matrix = append(bt.matrix, paddingRow)
	}
	return nil
}

// deriveOmicron computes the trace-domain generator: the supplied
// outer-domain generator raised to order/paddedHeight. Both construction
// paths run this same derivation from the same (generator, order,
// paddedHeight), so prover and verifier agree by construction. An order the
// padded height does not divide is a protocol defect surfaced as
// DomainMismatch, never silently coerced.
func deriveOmicron(name string, generator field.Element, order, paddedHeight int) (field.Element, error) {
	if paddedHeight == 0 || paddedHeight == 1 {
		return field.One, nil
	}

	if order%paddedHeight != 0 {
		return field.Zero, arith.NewDomainMismatch(name,
			fmt.Sprintf("outer domain order %d is not divisible by padded height %d", order, paddedHeight))
	}

	return generator.ModPow(uint64(order / paddedHeight)), nil
}

// padHeight returns the next power of two at or above the trace length.
// A trace of length zero pads to zero: the table never executes.
func padHeight(length int) int {
	if length == 0 {
		return 0
	}
	return nextPowerOfTwo(length)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}
