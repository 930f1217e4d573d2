// Package app is an unlocked wallet session: one account, the screen and
// sheet it is showing, a balance poller, and the send, receive and faucet
// actions a front end drives.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/config"
	"github.com/mrz1836/suiwallet/internal/metrics"
	"github.com/mrz1836/suiwallet/internal/navigation"
	"github.com/mrz1836/suiwallet/internal/output"
	"github.com/mrz1836/suiwallet/internal/service/balance"
	"github.com/mrz1836/suiwallet/internal/service/faucet"
	"github.com/mrz1836/suiwallet/internal/service/transaction"
	"github.com/mrz1836/suiwallet/internal/wallet"
)

// DefaultPollInterval is how often the balance is refreshed while a session runs.
const DefaultPollInterval = 10 * time.Second

// ErrNoAccount is returned when a session is created without an account.
var ErrNoAccount = errors.New("session requires an account")

// Ledger is everything a session needs from the network. *sui.Client satisfies it.
type Ledger interface {
	transaction.Ledger
	chain.BalanceReader
	faucet.Requester
}

// Config holds the dependencies of a session.
type Config struct {
	Account      *wallet.Account
	Ledger       Ledger
	ExplorerURL  string
	PollInterval time.Duration
	Logger       *config.Logger
	Metrics      *metrics.Metrics
}

// Session coordinates one account's wallet screens.
type Session struct {
	account  *wallet.Account
	ledger   Ledger
	explorer string
	interval time.Duration
	logger   *config.Logger

	nav      *navigation.State
	poller   *balance.Poller
	executor *transaction.Executor
	faucet   *faucet.Service

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	send     SendSheet
	activity []Activity
}

// New creates a session for cfg.Account. The account's recovery phrase is
// cleared: a running session never holds it.
func New(ctx context.Context, cfg *Config) (*Session, error) {
	if cfg.Account == nil {
		return nil, ErrNoAccount
	}
	logger := cfg.Logger
	if logger == nil {
		logger = config.NullLogger()
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	cfg.Account.ClearMnemonic()

	ctx, cancel := context.WithCancel(ctx)
	fetcher := balance.NewFetcher(&balance.Config{
		Client:  cfg.Ledger,
		Logger:  logger.Named("balance"),
		Metrics: m,
	})

	s := &Session{
		account:  cfg.Account,
		ledger:   cfg.Ledger,
		explorer: cfg.ExplorerURL,
		interval: interval,
		logger:   logger.Named("app"),
		nav:      navigation.New(),
		poller:   balance.NewPoller(ctx, fetcher, cfg.Account),
		executor: transaction.NewExecutor(&transaction.Config{
			Logger:  logger.Named("transfer"),
			Metrics: m,
		}),
		faucet: faucet.NewService(&faucet.Config{
			Requester: cfg.Ledger,
			Logger:    logger.Named("faucet"),
		}),
		cancel: cancel,
	}
	return s, nil
}

// Start begins periodic balance refreshes. The first fetch is triggered immediately.
func (s *Session) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.poller.Run(ctx, s.interval)
	}()
}

// Close stops polling and waits for background work. The account is left intact.
func (s *Session) Close() {
	s.cancel()
	s.poller.Close()
	s.faucet.Wait()
	s.wg.Wait()
}

// Account returns the session's account.
func (s *Session) Account() *wallet.Account {
	return s.account
}

// Address returns the account address.
func (s *Session) Address() string {
	return s.account.Address
}

// ShortAddress returns the address truncated for headers.
func (s *Session) ShortAddress() string {
	return output.ShortAddress(s.account.Address)
}

// Navigation returns the session's navigation state.
func (s *Session) Navigation() *navigation.State {
	return s.nav
}

// Refresh triggers one balance fetch and returns its trigger number.
func (s *Session) Refresh() uint64 {
	return s.poller.Trigger()
}

// Balance returns the most recently fetched balance.
func (s *Session) Balance() balance.Update {
	return s.poller.Latest()
}

// BalanceUpdates returns a channel of completed balance fetches.
func (s *Session) BalanceUpdates() <-chan balance.Update {
	return s.poller.Subscribe()
}

// Receive returns what the receive sheet shows.
func (s *Session) Receive() ReceiveInfo {
	return ReceiveInfo{
		Address:     s.account.Address,
		Short:       output.ShortAddress(s.account.Address),
		ExplorerURL: chain.AccountURL(s.explorer, s.account.Address),
	}
}

// RequestFaucet asks the faucet for test SUI in the background and refreshes
// the balance when it succeeds. The channel yields whether it succeeded.
func (s *Session) RequestFaucet(ctx context.Context) <-chan bool {
	return s.faucet.Go(ctx, s.account, func(ok bool) {
		if ok {
			s.poller.Trigger()
		}
	})
}
