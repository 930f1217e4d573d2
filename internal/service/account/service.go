// Package account creates and imports Sui accounts and drives the
// wallet-setup flow.
package account

import (
	"context"
	"fmt"

	"github.com/mrz1836/suiwallet/internal/metrics"
	"github.com/mrz1836/suiwallet/internal/wallet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// Config holds dependencies for the provisioner.
type Config struct {
	// Scheme for new and imported accounts. Defaults to Ed25519.
	Scheme wallet.Scheme
	// WordCount for generated phrases. Defaults to 12.
	WordCount int
	Logger    LogWriter
	Metrics   OpRecorder
}

// Provisioner creates fresh accounts and imports existing ones.
type Provisioner struct {
	scheme    wallet.Scheme
	wordCount int
	logger    LogWriter
	metrics   OpRecorder
}

// NewProvisioner creates a new account provisioner.
func NewProvisioner(cfg *Config) *Provisioner {
	if cfg == nil {
		cfg = &Config{}
	}
	p := &Provisioner{
		scheme:    cfg.Scheme,
		wordCount: cfg.WordCount,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
	if p.scheme == "" {
		p.scheme = wallet.DefaultScheme
	}
	if p.wordCount == 0 {
		p.wordCount = wallet.DefaultWordCount
	}
	if p.logger == nil {
		p.logger = nopLogger{}
	}
	if p.metrics == nil {
		p.metrics = metrics.Global
	}
	return p
}

// WithScheme returns a copy of p deriving keys for scheme.
func (p *Provisioner) WithScheme(scheme wallet.Scheme) *Provisioner {
	cp := *p
	cp.scheme = scheme
	return &cp
}

// Scheme returns the key scheme accounts are derived with.
func (p *Provisioner) Scheme() wallet.Scheme {
	return p.scheme
}

// CreateAccount generates a new phrase and derives its account. The
// returned account carries the phrase for one-time display. An error here
// means key generation itself is broken and should be treated as fatal.
func (p *Provisioner) CreateAccount(ctx context.Context) (*wallet.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	acct, err := wallet.GenerateAccount(p.wordCount, p.scheme)
	p.metrics.RecordWalletOp(err)
	if err != nil {
		p.logger.Error("account creation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", walleterr.ErrAccountCreation, err)
	}

	p.logger.Debug("created %s account %s", acct.Scheme, acct.Address)
	return acct, nil
}

// Import derives the account for a phrase given as separate words and
// reports why it could not.
func (p *Provisioner) Import(ctx context.Context, words []string) (*wallet.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	acct, err := wallet.NewAccountFromMnemonic(wallet.JoinWords(words), p.scheme)
	p.metrics.RecordWalletOp(err)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", walleterr.ErrImportFailed, err)
	}
	return acct, nil
}

// ImportAccount is Import with the cause collapsed: on any failure it
// returns false and logs why.
func (p *Provisioner) ImportAccount(ctx context.Context, words []string) (*wallet.Account, bool) {
	acct, err := p.Import(ctx, words)
	if err != nil {
		p.logger.Debug("import of %d-word phrase failed: %v", len(words), err)
		return nil, false
	}
	p.logger.Debug("imported %s account %s", acct.Scheme, acct.Address)
	return acct, true
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
