package xpoly

import (
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xfield"
)

func TestNewTrimsTrailingZeros(t *testing.T) {
	p := New([]xfield.Element{xfield.One, xfield.NewFromUint64(2), xfield.Zero, xfield.Zero})
	if p.Degree() != 1 {
		t.Errorf("degree = %d, want 1", p.Degree())
	}

	zero := New([]xfield.Element{xfield.Zero, xfield.Zero})
	if !zero.IsZero() {
		t.Error("all-zero coefficients should yield the zero polynomial")
	}
	if zero.Degree() != -1 {
		t.Errorf("zero polynomial degree = %d, want -1", zero.Degree())
	}
}

func TestEvaluate(t *testing.T) {
	// p(x) = 3 + 2x + x²
	p := New([]xfield.Element{
		xfield.NewFromUint64(3),
		xfield.NewFromUint64(2),
		xfield.One,
	})

	// p(5) = 3 + 10 + 25 = 38
	got := p.Evaluate(xfield.NewFromUint64(5))
	if !got.Equal(xfield.NewFromUint64(38)) {
		t.Errorf("p(5) = %s, want 38", got)
	}

	if !Zero().Evaluate(xfield.NewFromUint64(5)).IsZero() {
		t.Error("zero polynomial should evaluate to zero")
	}
}

func TestAddMul(t *testing.T) {
	p := New([]xfield.Element{xfield.One, xfield.NewFromUint64(2)})  // 1 + 2x
	q := New([]xfield.Element{xfield.NewFromUint64(3), xfield.One}) // 3 + x

	sum := p.Add(q) // 4 + 3x
	if sum.Degree() != 1 {
		t.Errorf("sum degree = %d, want 1", sum.Degree())
	}
	point := xfield.NewFromUint64(7)
	if !sum.Evaluate(point).Equal(p.Evaluate(point).Add(q.Evaluate(point))) {
		t.Error("(p + q)(x) != p(x) + q(x)")
	}

	product := p.Mul(q) // 3 + 7x + 2x²
	if product.Degree() != 2 {
		t.Errorf("product degree = %d, want 2", product.Degree())
	}
	if !product.Evaluate(point).Equal(p.Evaluate(point).Mul(q.Evaluate(point))) {
		t.Error("(p · q)(x) != p(x) · q(x)")
	}

	if !p.Mul(Zero()).IsZero() {
		t.Error("p · 0 != 0")
	}
}

func TestZerofier(t *testing.T) {
	roots := []xfield.Element{
		xfield.NewFromUint64(2),
		xfield.NewFromUint64(5),
		xfield.New(field.Zero, field.One, field.Zero),
	}

	z := Zerofier(roots)
	if z.Degree() != len(roots) {
		t.Errorf("zerofier degree = %d, want %d", z.Degree(), len(roots))
	}
	for i, root := range roots {
		if !z.Evaluate(root).IsZero() {
			t.Errorf("zerofier does not vanish at root %d", i)
		}
	}
	if z.Evaluate(xfield.NewFromUint64(3)).IsZero() {
		t.Error("zerofier vanishes away from its roots")
	}

	// Monic: leading coefficient is one
	coefficients := z.Coefficients()
	if !coefficients[len(coefficients)-1].IsOne() {
		t.Error("zerofier is not monic")
	}
}

func TestInterpolate(t *testing.T) {
	points := [][2]xfield.Element{
		{xfield.NewFromUint64(1), xfield.NewFromUint64(10)},
		{xfield.NewFromUint64(2), xfield.NewFromUint64(23)},
		{xfield.NewFromUint64(3), xfield.NewFromUint64(42)},
		{xfield.NewFromUint64(7), xfield.NewFromUint64(5)},
	}

	p, err := Interpolate(points)
	if err != nil {
		t.Fatalf("Interpolate failed: %v", err)
	}
	if p.Degree() >= len(points) {
		t.Errorf("interpolant degree = %d, want < %d", p.Degree(), len(points))
	}
	for i, point := range points {
		got := p.Evaluate(point[0])
		if !got.Equal(point[1]) {
			t.Errorf("point %d: p(%s) = %s, want %s", i, point[0], got, point[1])
		}
	}
}

func TestInterpolateSinglePoint(t *testing.T) {
	points := [][2]xfield.Element{
		{xfield.NewFromUint64(4), xfield.NewFromUint64(9)},
	}

	p, err := Interpolate(points)
	if err != nil {
		t.Fatalf("Interpolate failed: %v", err)
	}
	if !p.Evaluate(xfield.NewFromUint64(100)).Equal(xfield.NewFromUint64(9)) {
		t.Error("single-point interpolant should be constant")
	}
}

func TestInterpolateRejectsDuplicatePoints(t *testing.T) {
	points := [][2]xfield.Element{
		{xfield.NewFromUint64(1), xfield.NewFromUint64(10)},
		{xfield.NewFromUint64(1), xfield.NewFromUint64(20)},
	}
	if _, err := Interpolate(points); err == nil {
		t.Error("interpolation through duplicate points should fail")
	}
}

func TestInterpolateRejectsEmptyInput(t *testing.T) {
	if _, err := Interpolate(nil); err == nil {
		t.Error("interpolation through zero points should fail")
	}
}
