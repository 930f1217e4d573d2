package wallet

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/mrz1836/suiwallet/internal/crypto"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// Scheme identifies a Sui signature scheme.
type Scheme string

// Supported signature schemes.
const (
	SchemeEd25519   Scheme = "ed25519"
	SchemeSecp256k1 Scheme = "secp256k1"
)

// DefaultScheme is the scheme new accounts use unless told otherwise.
const DefaultScheme = SchemeEd25519

// Sui signature scheme flags, prefixed to public keys and serialized signatures.
const (
	FlagEd25519   byte = 0x00
	FlagSecp256k1 byte = 0x01
)

// ParseScheme parses a scheme name. An empty name yields DefaultScheme.
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ed25519":
		return SchemeEd25519, nil
	case "secp256k1", "k1":
		return SchemeSecp256k1, nil
	default:
		return "", walleterr.WithDetails(walleterr.ErrUnsupportedScheme, map[string]string{"scheme": s})
	}
}

// Flag returns the Sui flag byte for the scheme.
func (s Scheme) Flag() byte {
	if s == SchemeSecp256k1 {
		return FlagSecp256k1
	}
	return FlagEd25519
}

// DerivationPath returns the default Sui path for the given account index.
func (s Scheme) DerivationPath(account uint32) string {
	if s == SchemeSecp256k1 {
		return fmt.Sprintf("m/54'/784'/%d'/0/0", account)
	}
	return fmt.Sprintf("m/44'/784'/%d'/0'/0'", account)
}

// String returns the scheme name.
func (s Scheme) String() string {
	return string(s)
}

// keyPair is the scheme-specific half of an Account.
type keyPair interface {
	publicKey() []byte
	sign(msg []byte) ([]byte, error)
	destroy()
}

// ed25519Key signs the message bytes directly.
type ed25519Key struct {
	priv *crypto.SecureBytes
	pub  []byte
}

func newEd25519Key(seed []byte) *ed25519Key {
	priv := ed25519.NewKeyFromSeed(seed)
	defer crypto.Zero(priv)

	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv[32:])
	return &ed25519Key{priv: crypto.SecureBytesFromSlice(priv), pub: pub}
}

func (k *ed25519Key) publicKey() []byte { return k.pub }

func (k *ed25519Key) sign(msg []byte) ([]byte, error) {
	priv := k.priv.Bytes()
	if priv == nil {
		return nil, ErrKeyForgotten
	}
	return ed25519.Sign(ed25519.PrivateKey(priv), msg), nil
}

func (k *ed25519Key) destroy() { k.priv.Destroy() }

// secp256k1Key signs sha256(msg) and emits the 64-byte r||s form with low s.
type secp256k1Key struct {
	priv *crypto.SecureBytes
	pub  []byte
}

func newSecp256k1Key(privBytes []byte) *secp256k1Key {
	priv := secp256k1.PrivKeyFromBytes(privBytes)
	defer priv.Zero()
	return &secp256k1Key{
		priv: crypto.SecureBytesFromSlice(privBytes),
		pub:  priv.PubKey().SerializeCompressed(),
	}
}

func (k *secp256k1Key) publicKey() []byte { return k.pub }

func (k *secp256k1Key) sign(msg []byte) ([]byte, error) {
	raw := k.priv.Bytes()
	if raw == nil {
		return nil, ErrKeyForgotten
	}
	priv := secp256k1.PrivKeyFromBytes(raw)
	defer priv.Zero()

	hash := sha256.Sum256(msg)
	compact := ecdsa.SignCompact(priv, hash[:], true)
	return compact[1:], nil
}

func (k *secp256k1Key) destroy() { k.priv.Destroy() }
