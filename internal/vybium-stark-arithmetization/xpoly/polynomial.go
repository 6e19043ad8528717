// Package xpoly provides univariate polynomials in coefficient form over the
// extension field. It backs the interpolation and evaluation steps of the
// low-degree extender.
package xpoly

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xfield"
)

// Polynomial represents a polynomial by its coefficients, constant term first
type Polynomial struct {
	coefficients []xfield.Element
}

// New creates a polynomial from coefficients, constant term first.
// Trailing zero coefficients are trimmed.
func New(coefficients []xfield.Element) *Polynomial {
	degree := len(coefficients) - 1
	for degree >= 0 && coefficients[degree].IsZero() {
		degree--
	}
	trimmed := make([]xfield.Element, degree+1)
	copy(trimmed, coefficients[:degree+1])
	return &Polynomial{coefficients: trimmed}
}

// Zero returns the zero polynomial
func Zero() *Polynomial {
	return &Polynomial{coefficients: []xfield.Element{}}
}

// Coefficients returns a copy of the coefficients, constant term first
func (p *Polynomial) Coefficients() []xfield.Element {
	result := make([]xfield.Element, len(p.coefficients))
	copy(result, p.coefficients)
	return result
}

// Degree returns the degree of the polynomial (-1 for the zero polynomial)
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero checks if this is the zero polynomial
func (p *Polynomial) IsZero() bool {
	return len(p.coefficients) == 0
}

// Equal checks if two polynomials are equal
func (p *Polynomial) Equal(other *Polynomial) bool {
	if len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i := range p.coefficients {
		if !p.coefficients[i].Equal(other.coefficients[i]) {
			return false
		}
	}
	return true
}

// Evaluate evaluates the polynomial at a point using Horner's rule
func (p *Polynomial) Evaluate(point xfield.Element) xfield.Element {
	result := xfield.Zero
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(point).Add(p.coefficients[i])
	}
	return result
}

// Add returns the sum of two polynomials
func (p *Polynomial) Add(other *Polynomial) *Polynomial {
	n := len(p.coefficients)
	if len(other.coefficients) > n {
		n = len(other.coefficients)
	}
	sum := make([]xfield.Element, n)
	for i := range sum {
		sum[i] = xfield.Zero
		if i < len(p.coefficients) {
			sum[i] = sum[i].Add(p.coefficients[i])
		}
		if i < len(other.coefficients) {
			sum[i] = sum[i].Add(other.coefficients[i])
		}
	}
	return New(sum)
}

// Mul returns the product of two polynomials
func (p *Polynomial) Mul(other *Polynomial) *Polynomial {
	if p.IsZero() || other.IsZero() {
		return Zero()
	}
	product := make([]xfield.Element, len(p.coefficients)+len(other.coefficients)-1)
	for i := range product {
		product[i] = xfield.Zero
	}
	for i := range p.coefficients {
		for j := range other.coefficients {
			product[i+j] = product[i+j].Add(p.coefficients[i].Mul(other.coefficients[j]))
		}
	}
	return New(product)
}

// ScalarMul returns the polynomial scaled by a constant
func (p *Polynomial) ScalarMul(scalar xfield.Element) *Polynomial {
	scaled := make([]xfield.Element, len(p.coefficients))
	for i := range p.coefficients {
		scaled[i] = p.coefficients[i].Mul(scalar)
	}
	return New(scaled)
}

// Zerofier returns the monic polynomial with exactly the given roots
func Zerofier(roots []xfield.Element) *Polynomial {
	result := New([]xfield.Element{xfield.One})
	for _, root := range roots {
		result = result.Mul(New([]xfield.Element{root.Neg(), xfield.One}))
	}
	return result
}

// Interpolate computes the unique polynomial of degree < n through the n
// given (point, value) pairs using Lagrange interpolation.
//
// The barycentric weights 1/Π_{j≠i}(x_i - x_j) are obtained as 1/Z'(x_i)
// from the derivative of the zerofier, with a single batch inversion.
func Interpolate(points [][2]xfield.Element) (*Polynomial, error) {
	n := len(points)
	if n == 0 {
		return nil, fmt.Errorf("cannot interpolate through zero points")
	}

	xs := make([]xfield.Element, n)
	for i := range points {
		xs[i] = points[i][0]
	}

	zerofier := Zerofier(xs)
	derivative := zerofier.derivative()

	denominators := make([]xfield.Element, n)
	for i := range xs {
		denominators[i] = derivative.Evaluate(xs[i])
	}
	weights, err := xfield.BatchInversion(denominators)
	if err != nil {
		return nil, fmt.Errorf("interpolation points are not distinct: %w", err)
	}

	result := Zero()
	for i := range points {
		// numerator_i = zerofier / (x - x_i), via synthetic division
		numerator := zerofier.divideByLinear(xs[i])
		result = result.Add(numerator.ScalarMul(points[i][1].Mul(weights[i])))
	}
	return result, nil
}

// derivative returns the formal derivative of the polynomial
func (p *Polynomial) derivative() *Polynomial {
	if p.Degree() < 1 {
		return Zero()
	}
	coefficients := make([]xfield.Element, len(p.coefficients)-1)
	for i := 1; i < len(p.coefficients); i++ {
		coefficients[i-1] = p.coefficients[i].MulBase(field.New(uint64(i)))
	}
	return New(coefficients)
}

// divideByLinear divides the polynomial by (x - root) using synthetic
// division, assuming root is an exact root (the remainder is discarded)
func (p *Polynomial) divideByLinear(root xfield.Element) *Polynomial {
	if p.Degree() < 1 {
		return Zero()
	}
	quotient := make([]xfield.Element, len(p.coefficients)-1)
	carry := xfield.Zero
	for i := len(p.coefficients) - 1; i >= 1; i-- {
		quotient[i-1] = p.coefficients[i].Add(carry)
		carry = quotient[i-1].Mul(root)
	}
	return New(quotient)
}
