// Package testing holds helpers to build polynomials and shares for tests.
package testing

import (
	"math/big"

	"go.dedis.ch/kyber/v4/group/mod"
	"go.dedis.ch/kyber/v4/util/random"
)

// Dealer holds a random polynomial of degree threshold-1 over the field
// defined by modulus. It is only meant to produce test shares.
type Dealer struct {
	modulus *big.Int
	coeffs  []*mod.Int
}

// NewDealer samples a random polynomial with threshold coefficients
func NewDealer(modulus *big.Int, threshold int) *Dealer {
	stream := random.New()
	coeffs := make([]*mod.Int, threshold)
	for i := range coeffs {
		c := mod.NewInt64(0, modulus)
		c.Pick(stream)
		coeffs[i] = c
	}
	return &Dealer{modulus: modulus, coeffs: coeffs}
}

// NewDealerWithCoefficients uses the given coefficients, lowest degree first
func NewDealerWithCoefficients(modulus *big.Int, coeffs ...int64) *Dealer {
	cs := make([]*mod.Int, len(coeffs))
	for i, c := range coeffs {
		cs[i] = mod.NewInt64(c, modulus)
	}
	return &Dealer{modulus: modulus, coeffs: cs}
}

// Secret returns the constant term of the polynomial
func (d *Dealer) Secret() *big.Int {
	return new(big.Int).Set(&d.coeffs[0].V)
}

// Eval returns the polynomial evaluated at x using Horner's rule
func (d *Dealer) Eval(x int64) *big.Int {
	xi := mod.NewInt64(x, d.modulus)
	acc := mod.NewInt64(0, d.modulus)
	for i := len(d.coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, xi)
		acc.Add(acc, d.coeffs[i])
	}
	return new(big.Int).Set(&acc.V)
}

// Subsets calls f on every subset of size k of {0, ..., n-1}
func Subsets(n, k int, f func([]int)) {
	idx := make([]int, 0, k)
	var rec func(start int)
	rec = func(start int) {
		if len(idx) == k {
			f(append([]int(nil), idx...))
			return
		}
		for i := start; i < n; i++ {
			idx = append(idx, i)
			rec(i + 1)
			idx = idx[:len(idx)-1]
		}
	}
	rec(0)
}
