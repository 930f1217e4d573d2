package wallet

import (
	"regexp"
	"time"

	"github.com/mrz1836/go-sanitize"

	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// FileVersion is the current wallet file format version.
const FileVersion = 1

var (
	// ErrWalletNotFound indicates the wallet does not exist.
	ErrWalletNotFound = walleterr.ErrWalletNotFound

	// ErrWalletExists indicates a wallet with that name already exists.
	ErrWalletExists = walleterr.ErrWalletExists

	// ErrInvalidWalletName indicates the wallet name is invalid.
	ErrInvalidWalletName = walleterr.WithSuggestion(walleterr.ErrInvalidInput,
		"wallet name must be 1-64 alphanumeric characters, underscores, or hyphens")

	walletNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// Wallet is the public metadata of a stored account. The seed lives
// encrypted beside it and is never part of this struct.
type Wallet struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Scheme    Scheme    `json:"scheme"`
	Address   string    `json:"address"`
	PublicKey string    `json:"public_key"`
	Path      string    `json:"path"`
	Imported  bool      `json:"imported"`
	Version   int       `json:"version"`
}

// SuiAddress returns the wallet's account address.
func (w *Wallet) SuiAddress() string {
	return w.Address
}

// NewWallet records acct under name.
func NewWallet(name string, acct *Account, imported bool) (*Wallet, error) {
	if err := ValidateWalletName(name); err != nil {
		return nil, err
	}
	return &Wallet{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Scheme:    acct.Scheme,
		Address:   acct.Address,
		PublicKey: acct.PublicKeyBase64(),
		Path:      acct.Path,
		Imported:  imported,
		Version:   FileVersion,
	}, nil
}

// ValidateWalletName checks if a wallet name is valid.
func ValidateWalletName(name string) error {
	if !walletNameRegex.MatchString(name) {
		return ErrInvalidWalletName
	}
	return nil
}

// SuggestWalletName returns a sanitized, valid variant of name, or "" if none exists.
func SuggestWalletName(name string) string {
	suggested := sanitize.PathName(name)
	if len(suggested) > 64 {
		suggested = suggested[:64]
	}
	return suggested
}
