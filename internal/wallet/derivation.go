package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/decred/dcrd/hdkeychain/v3"

	"github.com/mrz1836/suiwallet/internal/crypto"
)

// ErrSeedLength indicates a seed outside the BIP32 16-64 byte range.
var ErrSeedLength = errors.New("seed must be between 16 and 64 bytes")

const (
	hardened     = hdkeychain.HardenedKeyStart
	suiCoinType  = 784
	ed25519Curve = "ed25519 seed"
)

// hdNetParams satisfies hdkeychain.NetworkParams. The version bytes are never
// serialized for Sui; the standard mainnet values are used.
type hdNetParams struct{}

func (hdNetParams) HDPrivKeyVersion() [4]byte { return [4]byte{0x04, 0x88, 0xAD, 0xE4} }
func (hdNetParams) HDPubKeyVersion() [4]byte  { return [4]byte{0x04, 0x88, 0xB2, 0x1E} }

// deriveKey derives the scheme's key at its default Sui path for account.
func deriveKey(seed []byte, scheme Scheme, account uint32) (keyPair, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, ErrSeedLength
	}

	switch scheme {
	case SchemeEd25519:
		key, _ := slip10Ed25519(seed, []uint32{
			hardened + 44, hardened + suiCoinType, hardened + account, hardened, hardened,
		})
		defer crypto.Zero(key)
		return newEd25519Key(key), nil

	case SchemeSecp256k1:
		priv, err := bip32Secp256k1(seed, []uint32{
			hardened + 54, hardened + suiCoinType, hardened + account, 0, 0,
		})
		if err != nil {
			return nil, err
		}
		defer crypto.Zero(priv)
		return newSecp256k1Key(priv), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

// slip10Ed25519 walks a fully hardened SLIP-0010 ed25519 path and returns the
// 32-byte private key and chain code.
func slip10Ed25519(seed []byte, path []uint32) (key, chainCode []byte) {
	mac := hmac.New(sha512.New, []byte(ed25519Curve))
	_, _ = mac.Write(seed)
	sum := mac.Sum(nil)
	key, chainCode = sum[:32], sum[32:]

	data := make([]byte, 37)
	defer crypto.Zero(data)
	for _, index := range path {
		// ed25519 only defines hardened children
		index |= hardened

		data[0] = 0
		copy(data[1:33], key)
		binary.BigEndian.PutUint32(data[33:], index)

		mac = hmac.New(sha512.New, chainCode)
		_, _ = mac.Write(data)
		next := mac.Sum(nil)
		crypto.Zero(key)
		key, chainCode = next[:32], next[32:]
	}
	return key, chainCode
}

// bip32Secp256k1 walks a BIP32 path and returns the 32-byte private key.
func bip32Secp256k1(seed []byte, path []uint32) ([]byte, error) {
	key, err := hdkeychain.NewMaster(seed, hdNetParams{})
	if err != nil {
		return nil, fmt.Errorf("creating master key: %w", err)
	}

	for _, index := range path {
		key, err = key.ChildBIP32Std(index)
		if err != nil {
			return nil, fmt.Errorf("deriving child %d: %w", index, err)
		}
	}

	serialized, err := key.SerializedPrivKey()
	if err != nil {
		return nil, fmt.Errorf("serializing private key: %w", err)
	}
	priv := make([]byte, 32)
	copy(priv[32-len(serialized):], serialized)
	return priv, nil
}
