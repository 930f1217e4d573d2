package session

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mrz1836/suiwallet/internal/crypto"
	"github.com/mrz1836/suiwallet/internal/fileutil"
	"github.com/mrz1836/suiwallet/internal/wallet"
)

const (
	sessionFileExtension   = ".session"
	sessionFilePermissions = 0o600
	sessionDirPermissions  = 0o700
	sessionKeyLength       = 32

	// Session keys are uniformly random, so the scrypt cost only adds latency.
	sessionWorkFactor = 10
)

type sessionFile struct {
	Session    *Session `json:"session"`
	SealedSeed []byte   `json:"sealed_seed"`
}

// FileManager keeps one session file per wallet and the matching key in a Keyring.
type FileManager struct {
	basePath  string
	keyring   Keyring
	sealer    crypto.Sealer
	available bool
	mu        sync.RWMutex
}

// NewManager creates a manager rooted at basePath. A nil keyring selects the OS keychain.
func NewManager(basePath string, keyring Keyring) *FileManager {
	if keyring == nil {
		keyring = NewOSKeyring()
	}
	return &FileManager{
		basePath:  basePath,
		keyring:   keyring,
		sealer:    crypto.Sealer{WorkFactor: sessionWorkFactor},
		available: Probe(keyring),
	}
}

// Available reports whether sessions can be cached.
func (m *FileManager) Available() bool {
	return m.available
}

// StartSession seals seed under a fresh random key and writes the session file.
func (m *FileManager) StartSession(name string, seed []byte, ttl time.Duration) error {
	if err := wallet.ValidateWalletName(name); err != nil {
		return ErrInvalidWalletName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.available {
		return ErrKeyringUnavailable
	}

	key, err := crypto.RandomSecureBytes(sessionKeyLength)
	if err != nil {
		return fmt.Errorf("generating session key: %w", err)
	}
	defer key.Destroy()

	sealed, err := m.sealer.Seal(seed, hex.EncodeToString(key.Bytes()))
	if err != nil {
		return fmt.Errorf("sealing seed: %w", err)
	}

	user := keyringUser(name)
	if err := m.keyring.Set(ServiceName, user, base64.StdEncoding.EncodeToString(key.Bytes())); err != nil {
		return fmt.Errorf("storing session key in keyring: %w", err)
	}

	now := time.Now()
	sf := sessionFile{
		Session: &Session{
			WalletName: name,
			CreatedAt:  now,
			ExpiresAt:  now.Add(ClampTTL(ttl)),
		},
		SealedSeed: sealed,
	}

	if err := os.MkdirAll(m.basePath, sessionDirPermissions); err != nil {
		_ = m.keyring.Delete(ServiceName, user)
		return fmt.Errorf("creating sessions directory: %w", err)
	}
	if err := fileutil.WriteJSONAtomic(m.sessionPath(name), sf, sessionFilePermissions); err != nil {
		_ = m.keyring.Delete(ServiceName, user)
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// GetSession unseals the cached seed. Expired or unreadable sessions are removed.
func (m *FileManager) GetSession(name string) (*crypto.SecureBytes, *Session, error) {
	if err := wallet.ValidateWalletName(name); err != nil {
		return nil, nil, ErrInvalidWalletName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.available {
		return nil, nil, ErrKeyringUnavailable
	}

	sf, err := m.readSession(name)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil, ErrSessionNotFound
	case err != nil:
		_ = m.cleanup(name)
		return nil, nil, ErrSessionCorrupted
	}

	if !sf.Session.IsValid() {
		_ = m.cleanup(name)
		return nil, nil, ErrSessionExpired
	}

	encoded, err := m.keyring.Get(ServiceName, keyringUser(name))
	if err != nil {
		_ = m.cleanup(name)
		return nil, nil, ErrSessionNotFound
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		_ = m.cleanup(name)
		return nil, nil, ErrSessionCorrupted
	}
	defer crypto.Zero(key)

	seed, err := m.sealer.Open(sf.SealedSeed, hex.EncodeToString(key))
	if err != nil {
		_ = m.cleanup(name)
		return nil, nil, ErrSessionCorrupted
	}
	return seed, sf.Session, nil
}

// HasValidSession reports whether an unexpired session file exists for name.
func (m *FileManager) HasValidSession(name string) bool {
	if wallet.ValidateWalletName(name) != nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.available {
		return false
	}
	sf, err := m.readSession(name)
	return err == nil && sf.Session.IsValid()
}

// EndSession removes the session for name. Ending a missing session is not an error.
func (m *FileManager) EndSession(name string) error {
	if err := wallet.ValidateWalletName(name); err != nil {
		return ErrInvalidWalletName
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanup(name)
}

// EndAllSessions removes every live session and returns the count.
func (m *FileManager) EndAllSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions, err := m.listLocked()
	if err != nil {
		return 0
	}
	count := 0
	for _, s := range sessions {
		if m.cleanup(s.WalletName) == nil {
			count++
		}
	}
	return count
}

// ListSessions returns all unexpired sessions.
func (m *FileManager) ListSessions() ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked()
}

func (m *FileManager) listLocked() ([]*Session, error) {
	if !m.available {
		return nil, ErrKeyringUnavailable
	}

	entries, err := os.ReadDir(m.basePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sessions directory: %w", err)
	}

	var sessions []*Session
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), sessionFileExtension) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), sessionFileExtension)
		if wallet.ValidateWalletName(name) != nil {
			continue
		}
		sf, readErr := m.readSession(name)
		if readErr != nil || !sf.Session.IsValid() {
			continue
		}
		sessions = append(sessions, sf.Session)
	}
	return sessions, nil
}

func (m *FileManager) readSession(name string) (*sessionFile, error) {
	//nolint:gosec // G304: name validated by wallet.ValidateWalletName
	data, err := os.ReadFile(m.sessionPath(name))
	if err != nil {
		return nil, err
	}

	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, err
	}
	if sf.Session == nil {
		return nil, ErrSessionCorrupted
	}
	return &sf, nil
}

// cleanup removes the keyring entry and the session file. Callers hold the lock.
func (m *FileManager) cleanup(name string) error {
	_ = m.keyring.Delete(ServiceName, keyringUser(name))

	if err := os.Remove(m.sessionPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

func keyringUser(name string) string {
	return "wallet:" + name
}

func (m *FileManager) sessionPath(name string) string {
	return filepath.Join(m.basePath, name+sessionFileExtension)
}
