// Package casefile reads recovery cases from disk. Two formats are supported:
// the JSON layout
//
//	{
//	  "keys": {"n": 4, "k": 3},
//	  "1": {"base": "10", "value": "4"},
//	  "2": {"base": "2", "value": "111"},
//	  ...
//	}
//
// where every key other than "keys" is the index of a share, and the binary
// encoding of secretsharing.MarshalCase for files ending in ".bin".
package casefile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sharerecovery/secretsharing"
	"sort"
	"strconv"

	"golang.org/x/xerrors"
)

// BinaryExt is the extension of binary encoded cases
const BinaryExt = ".bin"

const keysField = "keys"

// ErrMalformedCase is returned when a case file cannot be understood
var ErrMalformedCase = xerrors.New("malformed case")

type keys struct {
	N int `json:"n"`
	K int `json:"k"`
}

type encodedShare struct {
	Base  string `json:"base"`
	Value string `json:"value"`
}

// Parse reads a case in the JSON layout. All the shares found are returned,
// sorted by index.
func Parse(data []byte) (secretsharing.Case, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return secretsharing.Case{}, xerrors.Errorf("%v: %w", err, ErrMalformedCase)
	}

	rawKeys, ok := raw[keysField]
	if !ok {
		return secretsharing.Case{}, xerrors.Errorf("missing %q object: %w", keysField, ErrMalformedCase)
	}
	var k keys
	if err := json.Unmarshal(rawKeys, &k); err != nil {
		return secretsharing.Case{}, xerrors.Errorf("parsing %q: %v: %w", keysField, err, ErrMalformedCase)
	}

	c := secretsharing.Case{N: k.N, K: k.K}
	for name, msg := range raw {
		if name == keysField {
			continue
		}

		index, err := strconv.ParseInt(name, 10, 64)
		if err != nil {
			return secretsharing.Case{}, xerrors.Errorf("share key %q is not an index: %w", name, ErrMalformedCase)
		}

		var s encodedShare
		if err := json.Unmarshal(msg, &s); err != nil {
			return secretsharing.Case{}, xerrors.Errorf("share %q: %v: %w", name, err, ErrMalformedCase)
		}
		base, err := strconv.Atoi(s.Base)
		if err != nil {
			return secretsharing.Case{}, xerrors.Errorf("share %q: base %q: %w", name, s.Base, ErrMalformedCase)
		}

		c.Shares = append(c.Shares, secretsharing.NewShare(index, base, s.Value))
	}

	sort.Slice(c.Shares, func(i, j int) bool {
		return c.Shares[i].Index < c.Shares[j].Index
	})

	return c, nil
}

// Load reads the case stored at path, in binary form if the file ends with
// BinaryExt and JSON otherwise
func Load(path string) (secretsharing.Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return secretsharing.Case{}, xerrors.Errorf("reading case: %w", err)
	}

	if filepath.Ext(path) == BinaryExt {
		c, err := secretsharing.UnmarshalCase(data)
		if err != nil {
			return secretsharing.Case{}, xerrors.Errorf("%v: %w", err, ErrMalformedCase)
		}
		return c, nil
	}
	return Parse(data)
}

// Save writes c to path in binary form
func Save(path string, c secretsharing.Case) error {
	bs, err := secretsharing.MarshalCase(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0o644)
}
