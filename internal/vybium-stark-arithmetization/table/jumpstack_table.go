package table

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/domain"
	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xfield"
	arith "github.com/vybium/vybium-stark-arithmetization/pkg/vybium-stark-arithmetization"
)

// Column layout of the jump stack table.
//
// The table tracks the call/return address stack: one row per clock cycle,
// sorted by jump stack pointer first and clock cycle second on the
// processor's side of the permutation argument.
const (
	// JumpStackClk is the clock cycle of the operation
	JumpStackClk = iota

	// JumpStackCi is the current instruction
	JumpStackCi

	// JumpStackJsp is the jump stack pointer (call depth)
	JumpStackJsp

	// JumpStackJso is the jump stack origin (address the call came from)
	JumpStackJso

	// JumpStackJsd is the jump stack destination (address to return to)
	JumpStackJsd
)

const (
	// JumpStackBaseWidth is the declared base column width
	JumpStackBaseWidth = 5

	// JumpStackPermArgumentCount is the number of permutation arguments the
	// table carries (against the processor table)
	JumpStackPermArgumentCount = 1

	// JumpStackEvalArgumentCount is the number of evaluation arguments
	JumpStackEvalArgumentCount = 0

	// JumpStackInitialsCount is the number of initials the table consumes,
	// one per declared running argument
	JumpStackInitialsCount = JumpStackPermArgumentCount + JumpStackEvalArgumentCount

	// JumpStackFullWidth is the extended width: base columns plus one
	// running-argument column per declared argument
	JumpStackFullWidth = JumpStackBaseWidth + JumpStackInitialsCount

	// JumpStackProcessorPermCol is the extended-row index of the running
	// product against the processor table
	JumpStackProcessorPermCol = JumpStackBaseWidth
)

// JumpStackTable is the base-field view of the jump stack table
type JumpStackTable struct {
	base *BaseTable

	// extended is set once Extend has run; the extension step runs at most
	// once per table
	extended bool
}

// NewJumpStackTableProver creates the prover-side table from a real
// execution trace. The padded height is the next power of two at or above
// the trace length.
func NewJumpStackTableProver(
	generator field.Element,
	order int,
	numRandomizers int,
	matrix [][]field.Element,
) (*JumpStackTable, error) {
	base, err := newProverBase("JumpStackTable", JumpStackBaseWidth, JumpStackClk,
		generator, order, numRandomizers, matrix)
	if err != nil {
		return nil, err
	}
	return &JumpStackTable{base: base}, nil
}

// NewJumpStackTableVerifier creates the verifier-side table: padded height
// supplied directly, no trace rows. It answers every shape and constraint
// query identically to a prover-side table of the same shape.
func NewJumpStackTableVerifier(
	generator field.Element,
	order int,
	numRandomizers int,
	paddedHeight int,
) (*JumpStackTable, error) {
	base, err := newVerifierBase("JumpStackTable", JumpStackBaseWidth, JumpStackClk,
		generator, order, numRandomizers, paddedHeight)
	if err != nil {
		return nil, err
	}
	return &JumpStackTable{base: base}, nil
}

// Name returns the diagnostic identifier
func (t *JumpStackTable) Name() string { return t.base.Name() }

// Width returns the declared base column width
func (t *JumpStackTable) Width() int { return t.base.Width() }

// Height returns the current number of trace rows
func (t *JumpStackTable) Height() int { return t.base.Height() }

// PaddedHeight returns the power-of-two height
func (t *JumpStackTable) PaddedHeight() int { return t.base.PaddedHeight() }

// NumRandomizers returns the count of zero-knowledge randomizer rows
func (t *JumpStackTable) NumRandomizers() int { return t.base.NumRandomizers() }

// Omicron returns the trace-domain generator
func (t *JumpStackTable) Omicron() field.Element { return t.base.Omicron() }

// Row returns one trace row by index
func (t *JumpStackTable) Row(i int) []field.Element { return t.base.Row(i) }

// Pad extends the trace to a power-of-two height by cloning the last row
// and overwriting its clock column
func (t *JumpStackTable) Pad() error {
	if t.extended {
		return arith.NewInvalidUsage(t.Name(), "cannot pad a table that has already been extended")
	}
	return t.base.Pad()
}

// BaseTransitionConstraints returns the table's local constraints over two
// adjacent rows. The jump stack discipline is certified entirely through the
// permutation argument with the processor table, so no local constraints
// are declared.
func (t *JumpStackTable) BaseTransitionConstraints() []BaseTransitionConstraint {
	return []BaseTransitionConstraint{}
}

// Extend produces the extended trace carrying the running-product column of
// the permutation argument with the processor table. It consumes challenges
// and initials by reference and leaves the base trace untouched. Extension
// runs at most once per table and requires the trace to be padded.
func (t *JumpStackTable) Extend(challenges *AllChallenges, initials *AllInitials) (*ExtJumpStackTable, error) {
	return t.extend(challenges, initials.JumpStack, []xfield.Element{
		initials.JumpStack.ProcessorPermInitial,
	})
}

func (t *JumpStackTable) extend(
	challenges *AllChallenges,
	tableInitials JumpStackTableInitials,
	initialValues []xfield.Element,
) (*ExtJumpStackTable, error) {
	if t.extended {
		return nil, arith.NewInvalidUsage(t.Name(), "extension may run at most once per table")
	}
	if len(initialValues) != JumpStackInitialsCount {
		return nil, arith.NewShapeMismatch(t.Name(),
			JumpStackInitialsCount, len(initialValues), "initials count")
	}
	height := t.Height()
	if height != t.PaddedHeight() {
		return nil, arith.NewInvalidUsage(t.Name(),
			fmt.Sprintf("trace height %d differs from padded height %d; pad before extending",
				height, t.PaddedHeight()))
	}

	jsc := challenges.JumpStack()
	weights := []xfield.Element{
		jsc.ClkWeight, jsc.CiWeight, jsc.JspWeight, jsc.JsoWeight, jsc.JsdWeight,
	}

	// Compress every base row to a scalar, then fold the scalars in order
	// into the running product seeded by the initial.
	matrix := make([][]xfield.Element, height)
	compressed := make([]xfield.Element, height)
	for i := 0; i < height; i++ {
		row := make([]xfield.Element, JumpStackFullWidth)
		for j, value := range t.base.Row(i) {
			row[j] = xfield.FromBase(value)
		}

		scalar, err := CompressRow(row[:JumpStackBaseWidth], weights)
		if err != nil {
			return nil, arith.NewShapeMismatch(t.Name(), JumpStackBaseWidth, i, err.Error())
		}
		compressed[i] = scalar
		matrix[i] = row
	}

	terminal := tableInitials.ProcessorPermInitial
	if height > 0 {
		column, err := RunningProduct(compressed, tableInitials.ProcessorPermInitial, jsc.ProcessorPermRowWeight)
		if err != nil {
			return nil, fmt.Errorf("failed to extend %s: %w", t.Name(), err)
		}
		for i := 0; i < height; i++ {
			matrix[i][JumpStackProcessorPermCol] = column[i]
		}
		terminal = column[height-1]
	}

	t.extended = true

	return &ExtJumpStackTable{
		base: &ExtBaseTable{
			name:           "ExtJumpStackTable",
			fullWidth:      JumpStackFullWidth,
			paddedHeight:   t.PaddedHeight(),
			numRandomizers: t.NumRandomizers(),
			omicron:        t.Omicron(),
			generator:      t.base.Generator(),
			order:          t.base.Order(),
			matrix:         matrix,
		},
		initials: tableInitials,
		terminals: JumpStackTableTerminals{
			ProcessorPermTerminal: terminal,
		},
	}, nil
}

// ExtJumpStackTable is the extension-field view of the jump stack table,
// carrying the permutation argument's running-product column
type ExtJumpStackTable struct {
	base      *ExtBaseTable
	initials  JumpStackTableInitials
	terminals JumpStackTableTerminals
}

// Name returns the diagnostic identifier
func (t *ExtJumpStackTable) Name() string { return t.base.Name() }

// FullWidth returns the extended column width
func (t *ExtJumpStackTable) FullWidth() int { return t.base.FullWidth() }

// Height returns the current number of rows
func (t *ExtJumpStackTable) Height() int { return t.base.Height() }

// PaddedHeight returns the power-of-two height inherited from the base table
func (t *ExtJumpStackTable) PaddedHeight() int { return t.base.PaddedHeight() }

// Omicron returns the trace-domain generator
func (t *ExtJumpStackTable) Omicron() field.Element { return t.base.Omicron() }

// IsCodeword reports whether the table holds codewords instead of trace rows
func (t *ExtJumpStackTable) IsCodeword() bool { return t.base.IsCodeword() }

// Row returns one extended row by index
func (t *ExtJumpStackTable) Row(i int) []xfield.Element { return t.base.Row(i) }

// Column gathers one extended column across all rows
func (t *ExtJumpStackTable) Column(j int) []xfield.Element { return t.base.Column(j) }

// Terminals returns the terminal accumulators reached by the table's
// running arguments
func (t *ExtJumpStackTable) Terminals() JumpStackTableTerminals { return t.terminals }

// Pad is a fatal usage error: padding is meaningful only before promotion
// to the extension field
func (t *ExtJumpStackTable) Pad() error { return t.base.Pad() }

// compressExtendedRow condenses the base columns of an extended row using
// the session's weights
func compressExtendedRow(row []xfield.Element, jsc JumpStackTableChallenges) xfield.Element {
	return jsc.ClkWeight.Mul(row[JumpStackClk]).
		Add(jsc.CiWeight.Mul(row[JumpStackCi])).
		Add(jsc.JspWeight.Mul(row[JumpStackJsp])).
		Add(jsc.JsoWeight.Mul(row[JumpStackJso])).
		Add(jsc.JsdWeight.Mul(row[JumpStackJsd]))
}

// ExtBoundaryConstraints returns the constraints holding only at row 0: the
// running product has absorbed exactly the first row on top of its initial.
func (t *ExtJumpStackTable) ExtBoundaryConstraints(challenges *AllChallenges) []Constraint {
	jsc := challenges.JumpStack()
	initial := t.initials.ProcessorPermInitial

	return []Constraint{
		{
			Name:   "jumpstack_processor_perm_seed",
			Degree: 1,
			Evaluator: func(row []xfield.Element) xfield.Element {
				factor := jsc.ProcessorPermRowWeight.Sub(compressExtendedRow(row, jsc))
				return row[JumpStackProcessorPermCol].Sub(initial.Mul(factor))
			},
		},
	}
}

// ExtTransitionConstraints returns the constraints holding on every
// adjacent row pair: the base transition constraints (none for this table)
// extended with the accumulator-update relation of the permutation argument.
func (t *ExtJumpStackTable) ExtTransitionConstraints(challenges *AllChallenges) []TransitionConstraint {
	jsc := challenges.JumpStack()

	return []TransitionConstraint{
		{
			Name:   "jumpstack_processor_perm_update",
			Degree: 2,
			Evaluator: func(current, next []xfield.Element) xfield.Element {
				factor := jsc.ProcessorPermRowWeight.Sub(compressExtendedRow(next, jsc))
				return next[JumpStackProcessorPermCol].
					Sub(current[JumpStackProcessorPermCol].Mul(factor))
			},
		},
	}
}

// ExtTerminalConstraints returns the constraints holding only at the last
// row: the running product equals the terminal the processor table computed
// independently.
func (t *ExtJumpStackTable) ExtTerminalConstraints(challenges *AllChallenges, terminals *AllTerminals) []Constraint {
	_ = challenges
	expected := terminals.JumpStack.ProcessorPermTerminal

	return []Constraint{
		{
			Name:   "jumpstack_processor_perm_terminal",
			Degree: 1,
			Evaluator: func(row []xfield.Element) xfield.Element {
				return row[JumpStackProcessorPermCol].Sub(expected)
			},
		},
	}
}

// ExtCodewordTable interpolates each extended column over the trace domain
// and evaluates it over the given larger evaluation domain, returning a new
// table holding one codeword per column in place of trace rows
func (t *ExtJumpStackTable) ExtCodewordTable(evalDomain *domain.ArithmeticDomain) (*ExtJumpStackTable, error) {
	codewords, err := t.base.lowDegreeExtension(evalDomain)
	if err != nil {
		return nil, err
	}

	return &ExtJumpStackTable{
		base:      t.base.withCodewords(evalDomain, codewords),
		initials:  t.initials,
		terminals: t.terminals,
	}, nil
}
