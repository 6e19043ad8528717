package xfield

import (
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

func TestShahReduction(t *testing.T) {
	// x³ = x - 1 modulo the Shah polynomial
	x := New(field.Zero, field.One, field.Zero)
	xCubed := x.Mul(x).Mul(x)
	expected := New(field.One.Neg(), field.One, field.Zero)
	if !xCubed.Equal(expected) {
		t.Errorf("x³ = %s, want %s", xCubed, expected)
	}

	// x⁴ = x² - x
	xFourth := xCubed.Mul(x)
	expected = New(field.Zero, field.One.Neg(), field.One)
	if !xFourth.Equal(expected) {
		t.Errorf("x⁴ = %s, want %s", xFourth, expected)
	}
}

func TestBaseFieldEmbedding(t *testing.T) {
	a := NewFromUint64(7)
	b := NewFromUint64(6)

	product := a.Mul(b)
	if !product.Equal(NewFromUint64(42)) {
		t.Errorf("7·6 = %s, want 42", product)
	}
	if !product.IsBase() {
		t.Error("product of base elements should stay in the base field")
	}

	value, err := product.Unlift()
	if err != nil {
		t.Fatalf("Unlift failed: %v", err)
	}
	if value.Value() != 42 {
		t.Errorf("unlifted value = %d, want 42", value.Value())
	}

	x := New(field.Zero, field.One, field.Zero)
	if _, err := x.Unlift(); err == nil {
		t.Error("Unlift should reject elements outside the base field")
	}
}

func TestArithmeticIdentities(t *testing.T) {
	a := New(field.New(3), field.New(5), field.New(7))
	b := New(field.New(11), field.New(13), field.New(17))

	if !a.Add(b).Sub(b).Equal(a) {
		t.Error("(a + b) - b != a")
	}
	if !a.Add(a.Neg()).IsZero() {
		t.Error("a + (-a) != 0")
	}
	if !a.Mul(b).Equal(b.Mul(a)) {
		t.Error("multiplication is not commutative")
	}
	if !a.Mul(One).Equal(a) {
		t.Error("a · 1 != a")
	}
	if !a.Mul(Zero).IsZero() {
		t.Error("a · 0 != 0")
	}
	if !a.Square().Equal(a.Mul(a)) {
		t.Error("a² != a · a")
	}
}

func TestInverse(t *testing.T) {
	elements := []Element{
		One,
		NewFromUint64(2),
		New(field.New(3), field.New(5), field.New(7)),
		New(field.Zero, field.One, field.Zero),
		New(field.Zero, field.Zero, field.One),
		New(field.New(field.P-1), field.New(123456789), field.New(987654321)),
	}

	for i, e := range elements {
		inv := e.Inverse()
		if !e.Mul(inv).IsOne() {
			t.Errorf("element %d: e · e⁻¹ = %s, want 1", i, e.Mul(inv))
		}
	}
}

func TestInverseOfZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("inverting zero should panic")
		}
	}()
	Zero.Inverse()
}

func TestDiv(t *testing.T) {
	a := New(field.New(3), field.New(5), field.New(7))
	b := New(field.New(11), field.New(13), field.New(17))

	quotient, err := a.Div(b)
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}
	if !quotient.Mul(b).Equal(a) {
		t.Error("(a / b) · b != a")
	}

	if _, err := a.Div(Zero); err == nil {
		t.Error("division by zero should fail")
	}
}

func TestModPow(t *testing.T) {
	a := New(field.New(3), field.New(5), field.New(7))

	if !a.ModPow(0).IsOne() {
		t.Error("a⁰ != 1")
	}
	if !a.ModPow(1).Equal(a) {
		t.Error("a¹ != a")
	}
	if !a.ModPow(5).Equal(a.Mul(a).Mul(a).Mul(a).Mul(a)) {
		t.Error("a⁵ disagrees with repeated multiplication")
	}

	// The extension field is GF(p³); every nonzero element satisfies
	// a^(p-1)·... too big for uint64, so check a small multiplicative order
	// instead: a^(2^k) via repeated squaring.
	squared := a
	for i := 0; i < 10; i++ {
		squared = squared.Square()
	}
	if !a.ModPow(1 << 10).Equal(squared) {
		t.Error("a^(2^10) disagrees with repeated squaring")
	}
}

func TestBatchInversion(t *testing.T) {
	elements := []Element{
		NewFromUint64(2),
		New(field.New(3), field.New(5), field.New(7)),
		New(field.Zero, field.One, field.Zero),
		NewFromUint64(field.P - 1),
	}

	inverses, err := BatchInversion(elements)
	if err != nil {
		t.Fatalf("BatchInversion failed: %v", err)
	}
	if len(inverses) != len(elements) {
		t.Fatalf("got %d inverses for %d elements", len(inverses), len(elements))
	}
	for i := range elements {
		if !elements[i].Mul(inverses[i]).IsOne() {
			t.Errorf("element %d: batch inverse is wrong", i)
		}
	}
}

func TestBatchInversionRejectsZero(t *testing.T) {
	if _, err := BatchInversion([]Element{One, Zero, One}); err == nil {
		t.Error("batch inversion should reject zero inputs")
	}
}

func TestBatchInversionEmpty(t *testing.T) {
	inverses, err := BatchInversion([]Element{})
	if err != nil {
		t.Fatalf("BatchInversion of empty slice failed: %v", err)
	}
	if len(inverses) != 0 {
		t.Errorf("got %d inverses for empty input", len(inverses))
	}
}
