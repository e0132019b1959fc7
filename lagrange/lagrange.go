// Package lagrange recovers the constant term of a polynomial over a prime
// field from k of its evaluations.
package lagrange

import (
	"math/big"

	"go.dedis.ch/kyber/v4/group/mod"
	"golang.org/x/xerrors"
)

// DefaultPrime is the field prime used when none is configured
const DefaultPrime int64 = 1_000_000_007

// primality rounds used to validate a modulus
const primalityRounds = 20

var (
	// ErrDegenerateInterpolation is returned when two points share the same
	// x-coordinate in the field, making a denominator zero
	ErrDegenerateInterpolation = xerrors.New("degenerate interpolation")
	// ErrNoPoints is returned when there is nothing to interpolate
	ErrNoPoints = xerrors.New("no points to interpolate")
	// ErrInvalidModulus is returned when the modulus is not a prime
	ErrInvalidModulus = xerrors.New("invalid modulus")
	// ErrMissingValue is returned for a point without y value
	ErrMissingValue = xerrors.New("point has no value")
)

// Point is an evaluation (X, Y) of the polynomial. Y may be larger than the
// field and is reduced before use.
type Point struct {
	X int64
	Y *big.Int
}

// NewPoint returns the point (x, y)
func NewPoint(x int64, y *big.Int) Point {
	return Point{X: x, Y: y}
}

// DefaultModulus returns a fresh copy of DefaultPrime
func DefaultModulus() *big.Int {
	return big.NewInt(DefaultPrime)
}

// CheckModulus returns an error if modulus cannot be used as the field prime
func CheckModulus(modulus *big.Int) error {
	if modulus == nil || modulus.Cmp(big.NewInt(2)) < 0 {
		return xerrors.Errorf("modulus %v is lower than 2: %w", modulus, ErrInvalidModulus)
	}
	if !modulus.ProbablyPrime(primalityRounds) {
		return xerrors.Errorf("modulus %s is not prime: %w", modulus, ErrInvalidModulus)
	}
	return nil
}

// Reconstruct evaluates at x=0 the polynomial of degree len(points)-1 going
// through all the given points, with all the arithmetic done modulo modulus.
// The result is in [0, modulus).
//
// The points are expected to be exactly the k shares to use. The order of the
// points does not matter.
func Reconstruct(points []Point, modulus *big.Int) (*big.Int, error) {
	if err := CheckModulus(modulus); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	xs := make([]*mod.Int, len(points))
	ys := make([]*mod.Int, len(points))
	for i, p := range points {
		if p.Y == nil {
			return nil, xerrors.Errorf("point %d (x=%d): %w", i, p.X, ErrMissingValue)
		}
		xs[i] = mod.NewInt64(p.X, modulus)
		ys[i] = mod.NewInt(new(big.Int).Mod(p.Y, modulus), modulus)
	}

	// Fermat: den^(p-2) is the inverse of den
	exp := new(big.Int).Sub(modulus, big.NewInt(2))

	secret := mod.NewInt64(0, modulus)
	for i := range points {
		num := mod.NewInt64(1, modulus)
		den := mod.NewInt64(1, modulus)
		diff := mod.NewInt64(0, modulus)
		for j := range points {
			if i == j {
				continue
			}
			// (0 - x_j)
			num.Mul(num, mod.NewInt64(-points[j].X, modulus))
			// (x_i - x_j)
			diff.Sub(xs[i], xs[j])
			den.Mul(den, diff)
		}

		if den.V.Sign() == 0 {
			return nil, xerrors.Errorf("point %d (x=%d) collides with another point: %w",
				i, points[i].X, ErrDegenerateInterpolation)
		}

		term := mod.NewInt64(0, modulus)
		term.Mul(ys[i], num)
		term.Mul(term, pow(den, exp))
		secret.Add(secret, term)
	}

	return new(big.Int).Set(&secret.V), nil
}

// ModPow returns base^exp mod modulus computed by square-and-multiply. exp
// must be non-negative.
func ModPow(base, exp, modulus *big.Int) *big.Int {
	b := mod.NewInt(new(big.Int).Mod(base, modulus), modulus)
	return new(big.Int).Set(&pow(b, exp).V)
}

// pow runs square-and-multiply over the bits of exp, least significant first
func pow(base *mod.Int, exp *big.Int) *mod.Int {
	result := mod.NewInt64(1, base.M)
	b := mod.NewInt(&base.V, base.M)
	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			result.Mul(result, b)
		}
		b.Mul(b, b)
	}
	return result
}
