package sui

import (
	"encoding/hex"

	"github.com/mrz1836/suiwallet/internal/chain/sui/bcs"
	"github.com/mrz1836/suiwallet/internal/wallet"
)

// Address is a 32-byte Sui address or object ID.
type Address [wallet.AddressLength]byte

// ParseAddress parses "0x"-prefixed hex, left-padding short forms such as "0x2".
func ParseAddress(s string) (Address, error) {
	b, err := wallet.AddressBytes(s)
	if err != nil {
		return Address{}, err
	}
	return Address(b), nil
}

// MustParseAddress is ParseAddress for constants; it panics on bad input.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the full "0x"-prefixed lowercase hex form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalBCS writes the address as a fixed 32-byte array.
func (a Address) MarshalBCS(e *bcs.Encoder) {
	e.Fixed(a[:])
}
