package wallet

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/mrz1836/suiwallet/internal/crypto"
)

var (
	// ErrKeyForgotten is returned when signing with an account whose key was erased.
	ErrKeyForgotten = errors.New("account key has been erased")

	// ErrUnknownScheme is returned for a scheme without a derivation.
	ErrUnknownScheme = errors.New("unknown signature scheme")
)

// Account is a Sui keypair with its address. Mnemonic is only set on freshly
// created accounts, so the phrase can be shown once for backup.
type Account struct {
	Scheme    Scheme
	Address   string
	PublicKey []byte
	Path      string
	Mnemonic  string

	mu  sync.Mutex
	key keyPair
}

// NewAccountFromSeed derives the account at the scheme's default Sui path.
func NewAccountFromSeed(seed []byte, scheme Scheme, index uint32) (*Account, error) {
	key, err := deriveKey(seed, scheme, index)
	if err != nil {
		return nil, err
	}

	pub := key.publicKey()
	return &Account{
		Scheme:    scheme,
		Address:   AddressFromPublicKey(scheme, pub),
		PublicKey: pub,
		Path:      scheme.DerivationPath(index),
		key:       key,
	}, nil
}

// NewAccountFromMnemonic validates the phrase and derives account 0.
// The phrase is not retained on the returned Account.
func NewAccountFromMnemonic(mnemonic string, scheme Scheme) (*Account, error) {
	seed, err := MnemonicToSeed(mnemonic, "")
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(seed)

	return NewAccountFromSeed(seed, scheme, 0)
}

// GenerateAccount creates a fresh phrase of wordCount words and derives account 0.
// The phrase is kept on the returned Account.
func GenerateAccount(wordCount int, scheme Scheme) (*Account, error) {
	mnemonic, err := GenerateMnemonic(wordCount)
	if err != nil {
		return nil, fmt.Errorf("generating mnemonic: %w", err)
	}

	acct, err := NewAccountFromMnemonic(mnemonic, scheme)
	if err != nil {
		return nil, err
	}
	acct.Mnemonic = mnemonic
	return acct, nil
}

// Sign signs msg with the account key. Ed25519 signs msg itself; Secp256k1
// signs its SHA-256 digest.
func (a *Account) Sign(msg []byte) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.key == nil {
		return nil, ErrKeyForgotten
	}
	return a.key.sign(msg)
}

// SerializedSignature signs msg and returns flag || signature || public key.
func (a *Account) SerializedSignature(msg []byte) ([]byte, error) {
	sig, err := a.Sign(msg)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 1+len(sig)+len(a.PublicKey))
	out = append(out, a.Scheme.Flag())
	out = append(out, sig...)
	out = append(out, a.PublicKey...)
	return out, nil
}

// SuiAddress returns the account address.
func (a *Account) SuiAddress() string {
	return a.Address
}

// PublicKeyBase64 returns flag || pubkey in base64, the form Sui tools display.
func (a *Account) PublicKeyBase64() string {
	return base64.StdEncoding.EncodeToString(append([]byte{a.Scheme.Flag()}, a.PublicKey...))
}

// CanSign reports whether the account still holds its private key.
func (a *Account) CanSign() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.key != nil
}

// ClearMnemonic drops the recovery phrase once the user has confirmed the backup.
func (a *Account) ClearMnemonic() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Mnemonic = ""
}

// Forget erases the private key and the recovery phrase.
func (a *Account) Forget() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.key != nil {
		a.key.destroy()
		a.key = nil
	}
	a.Mnemonic = ""
}
