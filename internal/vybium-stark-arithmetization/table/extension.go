package table

// This file holds the running-argument machinery shared by all extended
// tables. A permutation argument folds compressed rows into a running
// product; an evaluation argument folds them into a Horner-style running
// sum. The terminal values are compared out-of-band against the counterpart
// table's terminals.

import (
	"fmt"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xfield"
)

// ArgumentType defines the type of cross-table argument
type ArgumentType int

const (
	// PermutationArgument proves two tables contain the same multiset of
	// rows. Uses a running product: RP[i] = RP[i-1] * (challenge - symbol[i])
	PermutationArgument ArgumentType = iota

	// EvaluationArgument proves a specific subsequence was read at specific
	// times. Uses a running sum: RE[i] = challenge * RE[i-1] + symbol[i]
	EvaluationArgument
)

// String returns the name of the argument type
func (at ArgumentType) String() string {
	switch at {
	case PermutationArgument:
		return "Permutation"
	case EvaluationArgument:
		return "Evaluation"
	default:
		return "Unknown"
	}
}

// CrossTableArgument describes one running argument between two tables
type CrossTableArgument struct {
	Type ArgumentType
	From TableID
	To   TableID
}

// CompressRow condenses a row into a single scalar using challenge weights.
// Formula: Σ weight_i · row_i
func CompressRow(row, weights []xfield.Element) (xfield.Element, error) {
	if len(row) != len(weights) {
		return xfield.Zero, fmt.Errorf("row length %d does not match weights length %d", len(row), len(weights))
	}

	result := xfield.Zero
	for i := range row {
		result = result.Add(weights[i].Mul(row[i]))
	}
	return result, nil
}

// RunningProduct computes the permutation-argument column for a table.
// Returns [RP[0], ..., RP[n-1]] where RP[i] = RP[i-1] * (challenge -
// symbols[i]), seeded by RP[-1] = initial.
func RunningProduct(symbols []xfield.Element, initial, challenge xfield.Element) ([]xfield.Element, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbols cannot be empty")
	}

	runningProduct := make([]xfield.Element, len(symbols))
	acc := initial
	for i := range symbols {
		acc = acc.Mul(challenge.Sub(symbols[i]))
		runningProduct[i] = acc
	}
	return runningProduct, nil
}

// PermutationTerminal computes the terminal value of a permutation argument:
// initial · Π_i (challenge - symbols[i]). Both sides of a permutation
// argument reach the same terminal exactly when they fold the same multiset.
func PermutationTerminal(symbols []xfield.Element, initial, challenge xfield.Element) xfield.Element {
	result := initial
	for _, symbol := range symbols {
		result = result.Mul(challenge.Sub(symbol))
	}
	return result
}

// RunningEvaluation computes the evaluation-argument column for a table.
// Returns [RE[0], ..., RE[n-1]] where RE[i] = challenge * RE[i-1] +
// symbols[i], seeded by RE[-1] = initial.
func RunningEvaluation(symbols []xfield.Element, initial, challenge xfield.Element) ([]xfield.Element, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbols cannot be empty")
	}

	runningEval := make([]xfield.Element, len(symbols))
	acc := initial
	for i := range symbols {
		acc = challenge.Mul(acc).Add(symbols[i])
		runningEval[i] = acc
	}
	return runningEval, nil
}

// EvaluationTerminal computes the terminal value of an evaluation argument:
// initial·x^n + Σ_i symbols[i]·x^(n-1-i), i.e. the Horner fold of all
// symbols at the challenge point.
func EvaluationTerminal(symbols []xfield.Element, initial, challenge xfield.Element) xfield.Element {
	result := initial
	for _, symbol := range symbols {
		result = challenge.Mul(result).Add(symbol)
	}
	return result
}

// VerifyTerminalEquality checks that the two sides of a cross-table argument
// reached the same terminal accumulator
func VerifyTerminalEquality(argument CrossTableArgument, fromTerminal, toTerminal xfield.Element) error {
	if !fromTerminal.Equal(toTerminal) {
		return fmt.Errorf("%s argument %s->%s: terminal %s does not match counterpart terminal %s",
			argument.Type, argument.From, argument.To, fromTerminal.String(), toTerminal.String())
	}
	return nil
}
