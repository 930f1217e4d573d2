package sui

import (
	"fmt"
	"strconv"

	"github.com/decred/base58"

	"github.com/mrz1836/suiwallet/internal/chain/sui/bcs"
)

// DigestLength is the byte length of object and transaction digests.
const DigestLength = 32

// ObjectRef identifies a specific version of an object.
type ObjectRef struct {
	ObjectID Address
	Version  uint64
	Digest   [DigestLength]byte
}

// MarshalBCS implements bcs.Marshaler.
func (r ObjectRef) MarshalBCS(e *bcs.Encoder) {
	r.ObjectID.MarshalBCS(e)
	e.U64(r.Version)
	e.ByteVector(r.Digest[:])
}

// GasData selects the coins, owner, price and budget paying for a transaction.
type GasData struct {
	Payment []ObjectRef
	Owner   Address
	Price   uint64
	Budget  uint64
}

// MarshalBCS implements bcs.Marshaler.
func (g GasData) MarshalBCS(e *bcs.Encoder) {
	bcs.Sequence(e, g.Payment)
	g.Owner.MarshalBCS(e)
	e.U64(g.Price)
	e.U64(g.Budget)
}

// TransactionData is the signed payload of a Sui transaction (V1).
type TransactionData struct {
	Kind   ProgrammableTransaction
	Sender Address
	Gas    GasData
	// ExpireEpoch, when set, limits execution to epochs up to this one.
	ExpireEpoch *uint64
}

// MarshalBCS implements bcs.Marshaler.
func (t TransactionData) MarshalBCS(e *bcs.Encoder) {
	e.Variant(0) // V1
	e.Variant(0) // ProgrammableTransaction
	t.Kind.MarshalBCS(e)
	t.Sender.MarshalBCS(e)
	t.Gas.MarshalBCS(e)
	if t.ExpireEpoch == nil {
		e.Variant(0)
		return
	}
	e.Variant(1)
	e.U64(*t.ExpireEpoch)
}

// DecodeDigest decodes a base58 object or transaction digest.
func DecodeDigest(s string) ([DigestLength]byte, error) {
	var out [DigestLength]byte
	raw := base58.Decode(s)
	if len(raw) != DigestLength {
		return out, fmt.Errorf("%w: digest %q", ErrInvalidResponse, s)
	}
	copy(out[:], raw)
	return out, nil
}

// EncodeDigest renders a digest as base58.
func EncodeDigest(d [DigestLength]byte) string {
	return base58.Encode(d[:])
}

func parseU64(field, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidResponse, field, s)
	}
	return v, nil
}
