// Package xfield implements the degree-3 extension of the Goldilocks base
// field provided by vybium-crypto.
//
// Elements are polynomials c0 + c1·x + c2·x² over the base field, reduced
// modulo the Shah polynomial x³ - x + 1. All running arguments and extended
// trace columns of the arithmetization layer live in this field.
package xfield

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// ExtensionDegree is the degree of the extension over the base field
const ExtensionDegree = 3

// Element represents an element of the extension field
type Element struct {
	coefficients [3]field.Element
}

// Zero is the additive identity
var Zero = Element{coefficients: [3]field.Element{field.Zero, field.Zero, field.Zero}}

// One is the multiplicative identity
var One = Element{coefficients: [3]field.Element{field.One, field.Zero, field.Zero}}

// New creates an element from its three base-field coefficients,
// constant term first
func New(c0, c1, c2 field.Element) Element {
	return Element{coefficients: [3]field.Element{c0, c1, c2}}
}

// NewFromUint64 creates a constant element from a uint64
func NewFromUint64(value uint64) Element {
	return FromBase(field.New(value))
}

// FromBase lifts a base-field element into the extension field
func FromBase(value field.Element) Element {
	return Element{coefficients: [3]field.Element{value, field.Zero, field.Zero}}
}

// Coefficients returns the base-field coefficients, constant term first
func (e Element) Coefficients() [3]field.Element {
	return e.coefficients
}

// IsBase reports whether the element lies in the base field
func (e Element) IsBase() bool {
	return e.coefficients[1].IsZero() && e.coefficients[2].IsZero()
}

// Unlift returns the base-field value of a base-field element
func (e Element) Unlift() (field.Element, error) {
	if !e.IsBase() {
		return field.Zero, fmt.Errorf("element %s does not lie in the base field", e.String())
	}
	return e.coefficients[0], nil
}

// Add performs extension-field addition
func (e Element) Add(other Element) Element {
	return Element{coefficients: [3]field.Element{
		e.coefficients[0].Add(other.coefficients[0]),
		e.coefficients[1].Add(other.coefficients[1]),
		e.coefficients[2].Add(other.coefficients[2]),
	}}
}

// Sub performs extension-field subtraction
func (e Element) Sub(other Element) Element {
	return Element{coefficients: [3]field.Element{
		e.coefficients[0].Sub(other.coefficients[0]),
		e.coefficients[1].Sub(other.coefficients[1]),
		e.coefficients[2].Sub(other.coefficients[2]),
	}}
}

// Neg returns the additive inverse
func (e Element) Neg() Element {
	return Element{coefficients: [3]field.Element{
		e.coefficients[0].Neg(),
		e.coefficients[1].Neg(),
		e.coefficients[2].Neg(),
	}}
}

// Mul performs extension-field multiplication.
//
// The product of the two coefficient polynomials is reduced modulo
// x³ - x + 1 using x³ = x - 1 and x⁴ = x² - x.
func (e Element) Mul(other Element) Element {
	a := e.coefficients
	b := other.coefficients

	d0 := a[0].Mul(b[0])
	d1 := a[0].Mul(b[1]).Add(a[1].Mul(b[0]))
	d2 := a[0].Mul(b[2]).Add(a[1].Mul(b[1])).Add(a[2].Mul(b[0]))
	d3 := a[1].Mul(b[2]).Add(a[2].Mul(b[1]))
	d4 := a[2].Mul(b[2])

	return Element{coefficients: [3]field.Element{
		d0.Sub(d3),
		d1.Add(d3).Sub(d4),
		d2.Add(d4),
	}}
}

// MulBase multiplies by a base-field scalar
func (e Element) MulBase(scalar field.Element) Element {
	return Element{coefficients: [3]field.Element{
		e.coefficients[0].Mul(scalar),
		e.coefficients[1].Mul(scalar),
		e.coefficients[2].Mul(scalar),
	}}
}

// Square computes the square of the element
func (e Element) Square() Element {
	return e.Mul(e)
}

// ModPow performs exponentiation by squaring
func (e Element) ModPow(exponent uint64) Element {
	result := One
	base := e
	for exponent > 0 {
		if exponent&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Square()
		exponent >>= 1
	}
	return result
}

// Inverse computes the multiplicative inverse via the extended Euclidean
// algorithm on coefficient polynomials, run against the Shah polynomial.
// Inverting zero is a defect in the calling protocol and panics, matching
// the base field's behavior.
func (e Element) Inverse() Element {
	if e.IsZero() {
		panic("xfield: cannot invert zero")
	}

	// Shah polynomial x³ - x + 1
	shah := []field.Element{field.One, field.One.Neg(), field.Zero, field.One}
	_, u, c := polyXGCD(e.coefficients[:], shah)

	// Normalize so that u·e ≡ 1 (mod shah): the gcd of e and an irreducible
	// modulus is the nonzero constant c.
	cInv := c.Inverse()
	inv := [3]field.Element{field.Zero, field.Zero, field.Zero}
	for i := 0; i < len(u) && i < 3; i++ {
		inv[i] = u[i].Mul(cInv)
	}
	return Element{coefficients: inv}
}

// Div performs extension-field division
func (e Element) Div(other Element) (Element, error) {
	if other.IsZero() {
		return Zero, fmt.Errorf("cannot divide by zero")
	}
	return e.Mul(other.Inverse()), nil
}

// Equal checks if two elements are equal
func (e Element) Equal(other Element) bool {
	return e.coefficients[0].Equal(other.coefficients[0]) &&
		e.coefficients[1].Equal(other.coefficients[1]) &&
		e.coefficients[2].Equal(other.coefficients[2])
}

// IsZero checks if the element is zero
func (e Element) IsZero() bool {
	return e.coefficients[0].IsZero() &&
		e.coefficients[1].IsZero() &&
		e.coefficients[2].IsZero()
}

// IsOne checks if the element is one
func (e Element) IsOne() bool {
	return e.Equal(One)
}

// String returns a string representation of the element
func (e Element) String() string {
	return fmt.Sprintf("(%s·x² + %s·x + %s)",
		e.coefficients[2].String(), e.coefficients[1].String(), e.coefficients[0].String())
}

// BatchInversion inverts all elements using Montgomery's trick: one field
// inversion plus 3(n-1) multiplications. Zero inputs are rejected.
func BatchInversion(elements []Element) ([]Element, error) {
	n := len(elements)
	if n == 0 {
		return []Element{}, nil
	}

	// Running prefix products
	prefixes := make([]Element, n)
	acc := One
	for i := 0; i < n; i++ {
		if elements[i].IsZero() {
			return nil, fmt.Errorf("cannot batch-invert: element %d is zero", i)
		}
		acc = acc.Mul(elements[i])
		prefixes[i] = acc
	}

	// Single inversion of the total product, then unwind
	inverses := make([]Element, n)
	accInv := prefixes[n-1].Inverse()
	for i := n - 1; i > 0; i-- {
		inverses[i] = accInv.Mul(prefixes[i-1])
		accInv = accInv.Mul(elements[i])
	}
	inverses[0] = accInv

	return inverses, nil
}

// polyXGCD runs the extended Euclidean algorithm on coefficient polynomials
// over the base field. It returns (gcd, u, v) with u·a + v·b = gcd, where
// gcd is returned through its leading coefficient and full coefficient slice.
func polyXGCD(a, b []field.Element) (gcd, u []field.Element, lead field.Element) {
	// Invariants: u0·a + v0·b = r0 and u1·a + v1·b = r1
	r0, r1 := trimPoly(a), trimPoly(b)
	u0 := []field.Element{field.One}
	u1 := []field.Element{}
	for polyDegree(r1) >= 0 {
		quotient, remainder := polyDivRem(r0, r1)
		r0, r1 = r1, remainder
		u0, u1 = u1, polySub(u0, polyMul(quotient, u1))
	}
	d := polyDegree(r0)
	if d < 0 {
		return r0, u0, field.Zero
	}
	return r0, u0, r0[d]
}

func trimPoly(p []field.Element) []field.Element {
	d := len(p) - 1
	for d >= 0 && p[d].IsZero() {
		d--
	}
	return p[:d+1]
}

func polyDegree(p []field.Element) int {
	return len(trimPoly(p)) - 1
}

func polySub(a, b []field.Element) []field.Element {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	result := make([]field.Element, n)
	for i := range result {
		result[i] = field.Zero
		if i < len(a) {
			result[i] = a[i]
		}
		if i < len(b) {
			result[i] = result[i].Sub(b[i])
		}
	}
	return trimPoly(result)
}

func polyMul(a, b []field.Element) []field.Element {
	if len(a) == 0 || len(b) == 0 {
		return []field.Element{}
	}
	result := make([]field.Element, len(a)+len(b)-1)
	for i := range result {
		result[i] = field.Zero
	}
	for i := range a {
		for j := range b {
			result[i+j] = result[i+j].Add(a[i].Mul(b[j]))
		}
	}
	return trimPoly(result)
}

// polyDivRem divides a by b, returning quotient and remainder
func polyDivRem(a, b []field.Element) (quotient, remainder []field.Element) {
	a = trimPoly(a)
	b = trimPoly(b)
	if len(b) == 0 {
		panic("xfield: polynomial division by zero")
	}

	remainder = make([]field.Element, len(a))
	copy(remainder, a)
	if len(a) < len(b) {
		return []field.Element{}, trimPoly(remainder)
	}

	quotient = make([]field.Element, len(a)-len(b)+1)
	for i := range quotient {
		quotient[i] = field.Zero
	}
	leadInv := b[len(b)-1].Inverse()
	for d := len(remainder) - 1; d >= len(b)-1; d-- {
		if remainder[d].IsZero() {
			continue
		}
		shift := d - (len(b) - 1)
		factor := remainder[d].Mul(leadInv)
		quotient[shift] = factor
		for j := range b {
			remainder[shift+j] = remainder[shift+j].Sub(factor.Mul(b[j]))
		}
	}
	return trimPoly(quotient), trimPoly(remainder)
}
