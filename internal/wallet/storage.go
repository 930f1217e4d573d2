package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mrz1836/suiwallet/internal/crypto"
	"github.com/mrz1836/suiwallet/internal/fileutil"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

const (
	walletFileExtension   = ".wallet"
	walletFilePermissions = 0o600
)

var (
	// ErrDecryptionFailed indicates a wrong password or a corrupted file.
	ErrDecryptionFailed = walleterr.ErrDecryptionFailed

	// ErrCorruptWallet indicates a wallet file without metadata.
	ErrCorruptWallet = errors.New("wallet file has no metadata")
)

// Storage persists wallets with their encrypted seed.
type Storage interface {
	Save(w *Wallet, seed []byte, password string) error
	Load(name, password string) (*Wallet, *crypto.SecureBytes, error)
	LoadMetadata(name string) (*Wallet, error)
	Exists(name string) (bool, error)
	List() ([]string, error)
	Delete(name string) error
}

type walletFile struct {
	Wallet        *Wallet `json:"wallet"`
	EncryptedSeed []byte  `json:"encrypted_seed"`
}

// FileStorage stores one JSON file per wallet under a directory.
type FileStorage struct {
	basePath string
	sealer   crypto.Sealer
}

// NewFileStorage creates a file storage rooted at basePath.
func NewFileStorage(basePath string) *FileStorage {
	return &FileStorage{basePath: basePath}
}

// WithSealer overrides the seed sealer (tests lower its work factor).
func (s *FileStorage) WithSealer(sealer crypto.Sealer) *FileStorage {
	s.sealer = sealer
	return s
}

// Save encrypts seed under password and writes the wallet. Existing wallets are never overwritten.
func (s *FileStorage) Save(w *Wallet, seed []byte, password string) error {
	if err := ValidateWalletName(w.Name); err != nil {
		return err
	}

	exists, err := s.Exists(w.Name)
	if err != nil {
		return fmt.Errorf("checking wallet existence: %w", err)
	}
	if exists {
		return walleterr.WithDetails(ErrWalletExists, map[string]string{"wallet": w.Name})
	}

	sealed, err := s.sealer.Seal(seed, password)
	if err != nil {
		return fmt.Errorf("encrypting seed: %w", err)
	}

	return fileutil.WriteJSONAtomic(s.walletPath(w.Name), walletFile{
		Wallet:        w,
		EncryptedSeed: sealed,
	}, walletFilePermissions)
}

// Load reads a wallet and decrypts its seed. The caller must Destroy the seed.
func (s *FileStorage) Load(name, password string) (*Wallet, *crypto.SecureBytes, error) {
	wf, err := s.read(name)
	if err != nil {
		return nil, nil, err
	}

	seed, err := s.sealer.Open(wf.EncryptedSeed, password)
	if err != nil {
		return nil, nil, walleterr.WithDetails(ErrDecryptionFailed, map[string]string{"wallet": name})
	}
	return wf.Wallet, seed, nil
}

// LoadMetadata reads wallet metadata without decrypting the seed.
func (s *FileStorage) LoadMetadata(name string) (*Wallet, error) {
	wf, err := s.read(name)
	if err != nil {
		return nil, err
	}
	return wf.Wallet, nil
}

// Exists checks if a wallet exists.
func (s *FileStorage) Exists(name string) (bool, error) {
	if err := ValidateWalletName(name); err != nil {
		return false, err
	}

	_, err := os.Stat(s.walletPath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns all wallet names in sorted order.
func (s *FileStorage) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading wallet directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), walletFileExtension) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), walletFileExtension))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a wallet file.
func (s *FileStorage) Delete(name string) error {
	exists, err := s.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return ErrWalletNotFound
	}

	if err := os.Remove(s.walletPath(name)); err != nil {
		return fmt.Errorf("removing wallet file: %w", err)
	}
	return nil
}

func (s *FileStorage) read(name string) (*walletFile, error) {
	exists, err := s.Exists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, walleterr.WithDetails(ErrWalletNotFound, map[string]string{"wallet": name})
	}

	//nolint:gosec // G304: name validated by ValidateWalletName
	data, err := os.ReadFile(s.walletPath(name))
	if err != nil {
		return nil, fmt.Errorf("reading wallet file: %w", err)
	}

	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parsing wallet file: %w", err)
	}
	if wf.Wallet == nil {
		return nil, ErrCorruptWallet
	}
	return &wf, nil
}

// walletPath joins a validated name; ValidateWalletName rules out traversal.
func (s *FileStorage) walletPath(name string) string {
	return filepath.Join(s.basePath, name+walletFileExtension)
}
