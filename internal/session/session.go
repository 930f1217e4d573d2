// Package session caches an unlocked wallet seed between suiwallet invocations.
// The seed is sealed under a random key kept in the OS keyring; the sealed
// blob lives in a session file next to the wallets.
package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/mrz1836/suiwallet/internal/crypto"
)

// Session lifetime bounds.
const (
	DefaultTTL = 15 * time.Minute
	MaxTTL     = 60 * time.Minute
	MinTTL     = 1 * time.Minute

	// ServiceName is the keyring service holding session keys.
	ServiceName = "suiwallet-session"

	// probeService is the keyring service used to test availability.
	probeService = "suiwallet-probe"
)

var (
	// ErrSessionNotFound indicates no session exists for the wallet.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired indicates the session has expired.
	ErrSessionExpired = errors.New("session expired")

	// ErrKeyringUnavailable indicates the OS keyring is not available.
	ErrKeyringUnavailable = errors.New("keyring unavailable")

	// ErrSessionCorrupted indicates the session file or key could not be read back.
	ErrSessionCorrupted = errors.New("session corrupted")

	// ErrInvalidWalletName is returned for names that could escape the session directory.
	ErrInvalidWalletName = errors.New("invalid wallet name")
)

// Session describes a cached unlock for one wallet.
type Session struct {
	WalletName string    `json:"wallet_name"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsValid reports whether the session has not expired.
func (s *Session) IsValid() bool {
	return s != nil && time.Now().Before(s.ExpiresAt)
}

// TTL returns the time left, or 0 once expired.
func (s *Session) TTL() time.Duration {
	if s == nil {
		return 0
	}
	if remaining := time.Until(s.ExpiresAt); remaining > 0 {
		return remaining
	}
	return 0
}

// ClampTTL bounds ttl to [MinTTL, MaxTTL].
func ClampTTL(ttl time.Duration) time.Duration {
	switch {
	case ttl < MinTTL:
		return MinTTL
	case ttl > MaxTTL:
		return MaxTTL
	default:
		return ttl
	}
}

// Manager caches wallet seeds.
type Manager interface {
	// Available reports whether the keyring works on this machine.
	Available() bool

	// StartSession seals seed for wallet and keeps it for ttl.
	StartSession(wallet string, seed []byte, ttl time.Duration) error

	// GetSession returns the cached seed in locked memory. The caller must Destroy it.
	GetSession(wallet string) (*crypto.SecureBytes, *Session, error)

	HasValidSession(wallet string) bool
	EndSession(wallet string) error

	// EndAllSessions ends every session and returns how many were removed.
	EndAllSessions() int

	// ListSessions returns the unexpired sessions.
	ListSessions() ([]*Session, error)
}

// Keyring stores short secrets by service and user.
type Keyring interface {
	Set(service, user, secret string) error
	Get(service, user string) (string, error)
	Delete(service, user string) error
}

// FormatRemaining renders a session TTL compactly: "45s", "15m", "2m30s".
// Sub-second remainders are dropped.
func FormatRemaining(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < time.Minute {
		return strconv.Itoa(int(d/time.Second)) + "s"
	}
	m, s := int(d/time.Minute), int(d%time.Minute/time.Second)
	if s == 0 {
		return strconv.Itoa(m) + "m"
	}
	return strconv.Itoa(m) + "m" + strconv.Itoa(s) + "s"
}
