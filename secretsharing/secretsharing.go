// Package secretsharing is the boundary between share sources (files, wire)
// and the reconstruction core: it turns encoded shares into points and
// recovers the secret of a case.
package secretsharing

import (
	"math/big"
	"sharerecovery/basedecoder"
	"sharerecovery/lagrange"
	"sort"

	"golang.org/x/xerrors"
)

var (
	// ErrMalformedShareCount is returned when the number of shares does not
	// match the threshold
	ErrMalformedShareCount = xerrors.New("malformed share count")
	// ErrInvalidIndex is returned for a share index lower than 1
	ErrInvalidIndex = xerrors.New("invalid share index")
)

// Share is one participant's fragment: the polynomial evaluated at Index,
// written with Digits in the given Base
type Share struct {
	Index  int64
	Base   int
	Digits string
}

// Case is a threshold K out of N together with the shares to use
type Case struct {
	N      int
	K      int
	Shares []Share
}

func NewShare(index int64, base int, digits string) Share {
	return Share{
		Index:  index,
		Base:   base,
		Digits: digits,
	}
}

// Point decodes the share into a point of the polynomial
func (s Share) Point() (lagrange.Point, error) {
	if s.Index < 1 {
		return lagrange.Point{}, xerrors.Errorf("index %d: %w", s.Index, ErrInvalidIndex)
	}
	y, err := basedecoder.Decode(s.Digits, s.Base)
	if err != nil {
		return lagrange.Point{}, xerrors.Errorf("share %d: %w", s.Index, err)
	}
	return lagrange.NewPoint(s.Index, y), nil
}

// Recover decodes the shares of c and interpolates the secret. c must hold
// exactly K shares.
func Recover(c Case, modulus *big.Int) (*big.Int, error) {
	if c.K < 1 || len(c.Shares) != c.K {
		return nil, xerrors.Errorf("need %d shares, got %d: %w",
			c.K, len(c.Shares), ErrMalformedShareCount)
	}

	points := make([]lagrange.Point, len(c.Shares))
	for i, s := range c.Shares {
		p, err := s.Point()
		if err != nil {
			return nil, err
		}
		points[i] = p
	}

	return lagrange.Reconstruct(points, modulus)
}

// SelectShares returns a copy of c holding only its first K shares by
// ascending index
func SelectShares(c Case) (Case, error) {
	if c.K < 1 || len(c.Shares) < c.K {
		return Case{}, xerrors.Errorf("need %d shares, got %d: %w",
			c.K, len(c.Shares), ErrMalformedShareCount)
	}

	shares := make([]Share, len(c.Shares))
	copy(shares, c.Shares)
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Index < shares[j].Index
	})

	return Case{
		N:      c.N,
		K:      c.K,
		Shares: shares[:c.K],
	}, nil
}
