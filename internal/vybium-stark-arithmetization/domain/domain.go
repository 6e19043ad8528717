// Package domain provides the evaluation domains consumed by the low-degree
// extender. A domain is a coset of a multiplicative subgroup of the extension
// field whose generator lies in the base field.
package domain

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xfield"
	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xpoly"
)

// ArithmeticDomain represents a domain for polynomial operations.
// Its elements are {offset * generator^i : i = 0..length-1}.
//
// All domains have power-of-2 lengths so that prover and verifier derive the
// same generators from the canonical roots of unity.
type ArithmeticDomain struct {
	// Offset shifts the domain (xfield.One for no offset)
	Offset xfield.Element

	// Generator is a primitive n-th root of unity where n = length
	Generator xfield.Element

	// Length is the number of elements in the domain (must be a power of 2)
	Length int
}

// New creates a domain of the given length with no offset
func New(length int) (*ArithmeticDomain, error) {
	if !isPowerOfTwo(length) {
		return nil, fmt.Errorf("domain length must be a power of 2, got %d", length)
	}

	// Roots of unity of 2-power order live in the base field
	generator := field.PrimitiveRootOfUnity(uint64(length))

	return &ArithmeticDomain{
		Offset:    xfield.One,
		Generator: xfield.FromBase(generator),
		Length:    length,
	}, nil
}

// NewWithGenerator creates a domain from an explicitly supplied generator,
// e.g. a table's omicron
func NewWithGenerator(generator field.Element, length int) (*ArithmeticDomain, error) {
	if !isPowerOfTwo(length) {
		return nil, fmt.Errorf("domain length must be a power of 2, got %d", length)
	}
	return &ArithmeticDomain{
		Offset:    xfield.One,
		Generator: xfield.FromBase(generator),
		Length:    length,
	}, nil
}

// WithOffset returns a new domain with the given coset offset
func (d *ArithmeticDomain) WithOffset(offset xfield.Element) *ArithmeticDomain {
	return &ArithmeticDomain{
		Offset:    offset,
		Generator: d.Generator,
		Length:    d.Length,
	}
}

// Halve returns a domain with half the length.
// Both offset and generator are squared.
func (d *ArithmeticDomain) Halve() (*ArithmeticDomain, error) {
	if d.Length < 2 {
		return nil, fmt.Errorf("cannot halve domain of length %d", d.Length)
	}
	return &ArithmeticDomain{
		Offset:    d.Offset.Mul(d.Offset),
		Generator: d.Generator.Mul(d.Generator),
		Length:    d.Length / 2,
	}, nil
}

// Elements returns all elements of the domain in order
func (d *ArithmeticDomain) Elements() []xfield.Element {
	elements := make([]xfield.Element, d.Length)
	current := d.Offset
	for i := 0; i < d.Length; i++ {
		elements[i] = current
		current = current.Mul(d.Generator)
	}
	return elements
}

// Evaluate evaluates a polynomial (in coefficient form) over the entire
// domain, producing a codeword. Deterministic: identical polynomials yield
// bit-identical codewords.
func (d *ArithmeticDomain) Evaluate(poly *xpoly.Polynomial) ([]xfield.Element, error) {
	if poly.Degree() >= d.Length {
		return nil, fmt.Errorf("polynomial degree %d does not fit domain of length %d",
			poly.Degree(), d.Length)
	}
	values := make([]xfield.Element, d.Length)
	for i, x := range d.Elements() {
		values[i] = poly.Evaluate(x)
	}
	return values, nil
}

// Interpolate computes the polynomial of degree < length taking the given
// values over the domain
func (d *ArithmeticDomain) Interpolate(values []xfield.Element) (*xpoly.Polynomial, error) {
	if len(values) != d.Length {
		return nil, fmt.Errorf("got %d values for domain of length %d", len(values), d.Length)
	}
	points := make([][2]xfield.Element, d.Length)
	for i, x := range d.Elements() {
		points[i] = [2]xfield.Element{x, values[i]}
	}
	return xpoly.Interpolate(points)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
