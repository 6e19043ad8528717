package table

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xfield"
)

func TestCompressRow(t *testing.T) {
	row := []xfield.Element{
		xfield.NewFromUint64(1),
		xfield.NewFromUint64(2),
		xfield.NewFromUint64(3),
		xfield.NewFromUint64(4),
		xfield.NewFromUint64(5),
	}
	weights := []xfield.Element{
		xfield.NewFromUint64(2),
		xfield.NewFromUint64(3),
		xfield.NewFromUint64(5),
		xfield.NewFromUint64(7),
		xfield.NewFromUint64(11),
	}

	// 2·1 + 3·2 + 5·3 + 7·4 + 11·5 = 106
	compressed, err := CompressRow(row, weights)
	require.NoError(t, err)
	assert.True(t, compressed.Equal(xfield.NewFromUint64(106)),
		"compressed = %s, want 106", compressed)
}

func TestCompressRowRejectsLengthMismatch(t *testing.T) {
	row := []xfield.Element{xfield.One, xfield.One}
	weights := []xfield.Element{xfield.One}
	_, err := CompressRow(row, weights)
	assert.Error(t, err)
}

func TestRunningProductSingleRow(t *testing.T) {
	// With compressed row 106, challenge 13 and initial 1, the accumulator
	// is 1 · (13 - 106) = -93 mod p.
	symbols := []xfield.Element{xfield.NewFromUint64(106)}
	column, err := RunningProduct(symbols, xfield.One, xfield.NewFromUint64(13))
	require.NoError(t, err)
	require.Len(t, column, 1)

	expected := xfield.NewFromUint64(field.P - 93)
	assert.True(t, column[0].Equal(expected), "accumulator = %s, want %s", column[0], expected)
}

func TestRunningProductRecurrence(t *testing.T) {
	symbols := []xfield.Element{
		xfield.NewFromUint64(4),
		xfield.NewFromUint64(9),
		xfield.NewFromUint64(16),
	}
	initial := xfield.NewFromUint64(3)
	challenge := xfield.NewFromUint64(21)

	column, err := RunningProduct(symbols, initial, challenge)
	require.NoError(t, err)
	require.Len(t, column, len(symbols))

	acc := initial
	for i, symbol := range symbols {
		acc = acc.Mul(challenge.Sub(symbol))
		assert.True(t, column[i].Equal(acc), "row %d disagrees with the recurrence", i)
	}
	assert.True(t, column[len(column)-1].Equal(PermutationTerminal(symbols, initial, challenge)),
		"last column entry should equal the terminal")
}

func TestRunningProductRejectsEmptyInput(t *testing.T) {
	_, err := RunningProduct(nil, xfield.One, xfield.One)
	assert.Error(t, err)
}

func TestPermutationTerminalIsOrderInvariant(t *testing.T) {
	symbols := make([]xfield.Element, 32)
	for i := range symbols {
		symbols[i] = xfield.NewFromUint64(uint64(i * i * 7))
	}
	initial := xfield.NewFromUint64(5)
	challenge := xfield.NewFromUint64(99)

	shuffled := make([]xfield.Element, len(symbols))
	copy(shuffled, symbols)
	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	a := PermutationTerminal(symbols, initial, challenge)
	b := PermutationTerminal(shuffled, initial, challenge)
	assert.True(t, a.Equal(b), "permutation terminal should not depend on row order")
}

func TestPermutationTerminalDetectsDifferentMultisets(t *testing.T) {
	symbols := []xfield.Element{xfield.NewFromUint64(4), xfield.NewFromUint64(9)}
	tampered := []xfield.Element{xfield.NewFromUint64(4), xfield.NewFromUint64(10)}
	initial := xfield.One
	challenge := xfield.NewFromUint64(99)

	a := PermutationTerminal(symbols, initial, challenge)
	b := PermutationTerminal(tampered, initial, challenge)
	assert.False(t, a.Equal(b), "different multisets should reach different terminals")
}

func TestRunningEvaluationRecurrence(t *testing.T) {
	symbols := []xfield.Element{
		xfield.NewFromUint64(4),
		xfield.NewFromUint64(9),
		xfield.NewFromUint64(16),
	}
	initial := xfield.NewFromUint64(3)
	challenge := xfield.NewFromUint64(21)

	column, err := RunningEvaluation(symbols, initial, challenge)
	require.NoError(t, err)
	require.Len(t, column, len(symbols))

	acc := initial
	for i, symbol := range symbols {
		acc = challenge.Mul(acc).Add(symbol)
		assert.True(t, column[i].Equal(acc), "row %d disagrees with the recurrence", i)
	}
	assert.True(t, column[len(column)-1].Equal(EvaluationTerminal(symbols, initial, challenge)),
		"last column entry should equal the terminal")
}

func TestRunningEvaluationIsOrderSensitive(t *testing.T) {
	forward := []xfield.Element{xfield.NewFromUint64(4), xfield.NewFromUint64(9)}
	backward := []xfield.Element{xfield.NewFromUint64(9), xfield.NewFromUint64(4)}
	initial := xfield.Zero
	challenge := xfield.NewFromUint64(21)

	a := EvaluationTerminal(forward, initial, challenge)
	b := EvaluationTerminal(backward, initial, challenge)
	assert.False(t, a.Equal(b), "evaluation terminal must depend on symbol order")
}

func TestVerifyTerminalEquality(t *testing.T) {
	argument := CrossTableArgument{
		Type: PermutationArgument,
		From: ProcessorTableID,
		To:   JumpStackTableID,
	}

	v := xfield.NewFromUint64(77)
	assert.NoError(t, VerifyTerminalEquality(argument, v, v))

	err := VerifyTerminalEquality(argument, v, xfield.NewFromUint64(78))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Permutation")
	assert.Contains(t, err.Error(), "JumpStack")
}
