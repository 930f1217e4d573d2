package wallet

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"

	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// AddressLength is the byte length of a Sui address.
const AddressLength = 32

// AddressFromPublicKey computes the Sui address blake2b256(flag || pubkey).
func AddressFromPublicKey(scheme Scheme, pub []byte) string {
	buf := make([]byte, 0, 1+len(pub))
	buf = append(buf, scheme.Flag())
	buf = append(buf, pub...)
	sum := blake2b.Sum256(buf)
	return "0x" + hex.EncodeToString(sum[:])
}

// NormalizeAddress returns addr as "0x" plus 64 lowercase hex digits.
// Short forms such as "0x2" are left-padded with zeros.
func NormalizeAddress(addr string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(addr))
	s = strings.TrimPrefix(s, "0x")

	if s == "" || len(s) > 2*AddressLength {
		return "", invalidAddress(addr)
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", invalidAddress(addr)
		}
	}

	return "0x" + strings.Repeat("0", 2*AddressLength-len(s)) + s, nil
}

// AddressBytes decodes a Sui address into its 32 raw bytes.
func AddressBytes(addr string) ([AddressLength]byte, error) {
	var out [AddressLength]byte
	norm, err := NormalizeAddress(addr)
	if err != nil {
		return out, err
	}
	if _, err := hex.Decode(out[:], []byte(norm[2:])); err != nil {
		return out, invalidAddress(addr)
	}
	return out, nil
}

// IsValidAddress reports whether addr parses as a Sui address.
func IsValidAddress(addr string) bool {
	_, err := NormalizeAddress(addr)
	return err == nil
}

func invalidAddress(addr string) error {
	return walleterr.WithDetails(walleterr.ErrInvalidAddress, map[string]string{"address": addr})
}
