package table

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/domain"
	arith "github.com/vybium/vybium-stark-arithmetization/pkg/vybium-stark-arithmetization"
)

// Arithmetization aggregates the base tables of one proof session and drives
// them through the pad → extend → codeword pipeline as a unit. Tables are
// held by concrete type so callers keep access to table-specific terminals
// and constraint sets.
type Arithmetization struct {
	JumpStack *JumpStackTable

	logger zerolog.Logger
}

// NewArithmetization assembles the aggregate from already-constructed tables
func NewArithmetization(jumpStack *JumpStackTable, logger zerolog.Logger) (*Arithmetization, error) {
	if jumpStack == nil {
		return nil, arith.NewInvalidUsage("Arithmetization", "jump stack table is required")
	}
	return &Arithmetization{
		JumpStack: jumpStack,
		logger:    logger,
	}, nil
}

// tables returns the aggregate's tables in TableID order
func (a *Arithmetization) tables() []Table {
	return []Table{a.JumpStack}
}

// PadAll pads every table to its own power-of-two height. Tables pad
// independently; nothing forces a shared height across tables.
func (a *Arithmetization) PadAll() error {
	for _, t := range a.tables() {
		before := t.Height()
		if err := t.Pad(); err != nil {
			return fmt.Errorf("failed to pad %s: %w", t.Name(), err)
		}
		a.logger.Debug().
			Str("table", t.Name()).
			Int("height", before).
			Int("padded_height", t.Height()).
			Msg("padded table")
	}
	return nil
}

// ExtendAll runs the extension step on every table against one shared
// challenge set and one set of initials, producing the extended aggregate.
// Extension of distinct tables is independent; tables extend in parallel.
func (a *Arithmetization) ExtendAll(challenges *AllChallenges, initials *AllInitials) (*ExtArithmetization, error) {
	ext := &ExtArithmetization{logger: a.logger}

	var g errgroup.Group
	g.Go(func() error {
		extended, err := a.JumpStack.Extend(challenges, initials)
		if err != nil {
			return fmt.Errorf("failed to extend %s: %w", a.JumpStack.Name(), err)
		}
		ext.JumpStack = extended
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug().
		Int("tables", len(a.tables())).
		Msg("extended all tables")

	return ext, nil
}

// ExtArithmetization aggregates the extended tables of one proof session
type ExtArithmetization struct {
	JumpStack *ExtJumpStackTable

	logger zerolog.Logger
}

// Terminals collects the terminal accumulators reported by every table
func (ea *ExtArithmetization) Terminals() *AllTerminals {
	return &AllTerminals{
		JumpStack: ea.JumpStack.Terminals(),
	}
}

// CrossTableArguments declares the running arguments tying the tables
// together. Terminal equality across each argument is what certifies each
// table's internal discipline.
func CrossTableArguments() []CrossTableArgument {
	return []CrossTableArgument{
		{Type: PermutationArgument, From: ProcessorTableID, To: JumpStackTableID},
	}
}

// VerifyTerminals checks every declared cross-table argument: this side's
// terminal must equal the one the counterpart table computed independently.
// Runs only after all extensions have completed.
func (ea *ExtArithmetization) VerifyTerminals(counterpart *AllTerminals) error {
	for _, argument := range CrossTableArguments() {
		if argument.To != JumpStackTableID {
			continue
		}
		err := VerifyTerminalEquality(argument,
			counterpart.JumpStack.ProcessorPermTerminal,
			ea.JumpStack.Terminals().ProcessorPermTerminal)
		if err != nil {
			return err
		}
	}
	return nil
}

// CodewordTables low-degree-extends every extended table over the shared
// evaluation domain. Tables extend in parallel; the result is a new
// aggregate, the trace views stay untouched.
func (ea *ExtArithmetization) CodewordTables(evalDomain *domain.ArithmeticDomain) (*ExtArithmetization, error) {
	out := &ExtArithmetization{logger: ea.logger}

	var g errgroup.Group
	g.Go(func() error {
		codewords, err := ea.JumpStack.ExtCodewordTable(evalDomain)
		if err != nil {
			return err
		}
		out.JumpStack = codewords
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ea.logger.Debug().
		Int("domain_length", evalDomain.Length).
		Msg("produced codeword tables")

	return out, nil
}
