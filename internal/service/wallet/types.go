package wallet

import (
	"time"

	"github.com/mrz1836/suiwallet/internal/wallet"
)

// LoadRequest names the wallet to unlock.
type LoadRequest struct {
	Name string
	// PasswordFunc prompts for the wallet password when no session is cached.
	PasswordFunc func(prompt string) (string, error)
	// OnAuthMessage, when set, receives one-line notes about how the wallet was unlocked.
	OnAuthMessage func(string)
}

// LoadResult is an unlocked wallet. The seed has already been wiped; call
// Account.Forget when done signing.
type LoadResult struct {
	Wallet  *wallet.Wallet
	Account *wallet.Account
	Auth    AuthInfo
}

// SaveRequest describes a wallet to persist.
type SaveRequest struct {
	Name     string
	Mnemonic string
	Scheme   wallet.Scheme
	Password string
	Imported bool
}

// AuthMode is how a wallet was unlocked.
type AuthMode int

const (
	// AuthSession used a cached session.
	AuthSession AuthMode = iota
	// AuthPassword used the wallet password.
	AuthPassword
)

// String returns the string representation of the auth mode.
func (a AuthMode) String() string {
	switch a {
	case AuthSession:
		return "session"
	case AuthPassword:
		return "password"
	default:
		return "unknown"
	}
}

// AuthInfo describes the unlock that produced a LoadResult.
type AuthInfo struct {
	Mode AuthMode
	// ExpiresIn is the session time left; zero when no session is active.
	ExpiresIn time.Duration
}
