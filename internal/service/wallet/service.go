package wallet

import (
	"fmt"

	"github.com/mrz1836/suiwallet/internal/crypto"
	"github.com/mrz1836/suiwallet/internal/wallet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// Service loads and saves wallets without any terminal dependencies.
type Service struct {
	storage    StorageProvider
	sessionMgr SessionManager
	config     ConfigProvider
	logger     LogWriter
}

// Config contains dependencies for creating a wallet service.
type Config struct {
	Storage    StorageProvider
	SessionMgr SessionManager
	Config     ConfigProvider
	Logger     LogWriter
}

// NewService creates a new wallet service instance.
func NewService(cfg *Config) *Service {
	s := &Service{
		storage:    cfg.Storage,
		sessionMgr: cfg.SessionMgr,
		config:     cfg.Config,
		logger:     cfg.Logger,
	}
	if s.logger == nil {
		s.logger = nopLogger{}
	}
	return s
}

// ValidateExists returns ErrWalletNotFound with a hint when name is not stored.
func (s *Service) ValidateExists(name string) error {
	exists, err := s.storage.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return walleterr.WithSuggestion(
			wallet.ErrWalletNotFound,
			fmt.Sprintf("wallet '%s' not found. List wallets with: suiwallet wallet list", name),
		)
	}
	return nil
}

// List returns all wallet names from storage.
func (s *Service) List() ([]string, error) {
	return s.storage.List()
}

// LoadMetadata loads wallet metadata without unlocking it.
func (s *Service) LoadMetadata(name string) (*wallet.Wallet, error) {
	if err := s.ValidateExists(name); err != nil {
		return nil, err
	}
	return s.storage.LoadMetadata(name)
}

// Save derives the account for req.Mnemonic and stores it sealed under req.Password.
func (s *Service) Save(req *SaveRequest) (*wallet.Wallet, *wallet.Account, error) {
	scheme := req.Scheme
	if scheme == "" {
		scheme = wallet.DefaultScheme
	}

	seed, err := wallet.MnemonicToSeed(req.Mnemonic, "")
	if err != nil {
		return nil, nil, err
	}
	defer crypto.Zero(seed)

	acct, err := wallet.NewAccountFromSeed(seed, scheme, 0)
	if err != nil {
		return nil, nil, err
	}

	w, err := wallet.NewWallet(req.Name, acct, req.Imported)
	if err != nil {
		acct.Forget()
		return nil, nil, err
	}
	if err := s.storage.Save(w, seed, req.Password); err != nil {
		acct.Forget()
		return nil, nil, err
	}

	s.logger.Debug("saved wallet %s (%s %s)", w.Name, w.Scheme, w.Address)
	return w, acct, nil
}

// Lock ends any cached session for name.
func (s *Service) Lock(name string) error {
	if s.sessionMgr == nil {
		return nil
	}
	return s.sessionMgr.EndSession(name)
}

func (s *Service) sessionsEnabled() bool {
	return s.config != nil && s.config.GetSecurity().SessionEnabled &&
		s.sessionMgr != nil && s.sessionMgr.Available()
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
