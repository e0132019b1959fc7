// Package basedecoder turns share values written in an arbitrary positional
// base into exact integers.
package basedecoder

import (
	"math/big"

	"golang.org/x/xerrors"
)

const (
	// MinBase is the smallest supported base
	MinBase = 2
	// MaxBase is the largest supported base, digits 0-9 then a-z
	MaxBase = 36
)

var (
	// ErrInvalidDigit is returned when a character is not a digit of the base
	ErrInvalidDigit = xerrors.New("invalid digit")
	// ErrInvalidBase is returned when the base is outside [MinBase, MaxBase]
	ErrInvalidBase = xerrors.New("invalid base")
	// ErrEmptyDigits is returned when there is nothing to decode
	ErrEmptyDigits = xerrors.New("empty digit string")
)

// digitValue returns the value of the given character, case-insensitive.
// The second return value is false if the character is not in [0-9a-zA-Z].
func digitValue(ch byte) (int64, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return int64(ch - '0'), true
	case 'a' <= ch && ch <= 'z':
		return int64(ch-'a') + 10, true
	case 'A' <= ch && ch <= 'Z':
		return int64(ch-'A') + 10, true
	default:
		return 0, false
	}
}

// Decode returns the value of digits read in the given base, most
// significant digit first. The result is exact whatever the length of the
// string.
func Decode(digits string, base int) (*big.Int, error) {
	if base < MinBase || base > MaxBase {
		return nil, xerrors.Errorf("base %d: %w", base, ErrInvalidBase)
	}
	if len(digits) == 0 {
		return nil, ErrEmptyDigits
	}

	bigBase := big.NewInt(int64(base))
	result := new(big.Int)
	d := new(big.Int)
	for pos := 0; pos < len(digits); pos++ {
		v, ok := digitValue(digits[pos])
		if !ok || v >= int64(base) {
			return nil, xerrors.Errorf("%q at position %d in base %d: %w",
				digits[pos], pos, base, ErrInvalidDigit)
		}
		result.Mul(result, bigBase)
		result.Add(result, d.SetInt64(v))
	}

	return result, nil
}
