// Package wallet loads stored wallets into signing accounts and saves new ones.
package wallet

import (
	"time"

	"github.com/mrz1836/suiwallet/internal/config"
	"github.com/mrz1836/suiwallet/internal/crypto"
	"github.com/mrz1836/suiwallet/internal/session"
	"github.com/mrz1836/suiwallet/internal/wallet"
)

// ConfigProvider provides access to security configuration.
type ConfigProvider interface {
	GetSecurity() config.SecurityConfig
}

// SessionManager caches unlocked seeds between runs.
type SessionManager interface {
	Available() bool
	HasValidSession(name string) bool
	GetSession(name string) (*crypto.SecureBytes, *session.Session, error)
	StartSession(name string, seed []byte, ttl time.Duration) error
	EndSession(name string) error
}

// StorageProvider persists wallets and their sealed seeds.
type StorageProvider interface {
	Save(w *wallet.Wallet, seed []byte, password string) error
	Load(name, password string) (*wallet.Wallet, *crypto.SecureBytes, error)
	LoadMetadata(name string) (*wallet.Wallet, error)
	Exists(name string) (bool, error)
	List() ([]string, error)
}

// LogWriter provides logging capabilities.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}
