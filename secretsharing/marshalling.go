package secretsharing

import (
	"go.dedis.ch/protobuf"
	"golang.org/x/xerrors"
)

// MarshalCase encodes the case and all its shares to bytes
func MarshalCase(c Case) ([]byte, error) {
	bs, err := protobuf.Encode(&c)
	if err != nil {
		return nil, xerrors.Errorf("encoding case: %w", err)
	}
	return bs, nil
}

// UnmarshalCase decodes a case encoded with MarshalCase
func UnmarshalCase(bs []byte) (Case, error) {
	c := Case{}
	err := protobuf.Decode(bs, &c)
	if err != nil {
		return Case{}, xerrors.Errorf("decoding case: %w", err)
	}
	return c, nil
}
