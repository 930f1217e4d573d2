// Package crypto seals wallet seeds at rest and holds key material in locked memory.
//
//nolint:revive // Internal package name is intentional
package crypto

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"
)

// ErrEmptyPassword is returned when sealing or opening with an empty password.
var ErrEmptyPassword = errors.New("password is empty")

// DefaultWorkFactor is the scrypt work factor (log2 N) used for new wallet files.
const DefaultWorkFactor = 18

// Sealer encrypts and decrypts secrets with an age scrypt recipient.
type Sealer struct {
	// WorkFactor is the scrypt log2(N). Zero means DefaultWorkFactor.
	WorkFactor int
}

// Seal encrypts plaintext under password.
func (s Sealer) Seal(plaintext []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	wf := s.WorkFactor
	if wf == 0 {
		wf = DefaultWorkFactor
	}
	recipient.SetWorkFactor(wf)

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing encrypted data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// Open decrypts ciphertext into locked memory. The caller must Destroy the result.
func (s Sealer) Open(ciphertext []byte, password string) (*SecureBytes, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("initializing decryption: %w", err)
	}

	plaintext, err := io.ReadAll(r)
	defer Zero(plaintext)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}

	return SecureBytesFromSlice(plaintext), nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
