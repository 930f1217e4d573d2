package balance

import (
	"context"
	"errors"
	"math/big"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/metrics"
)

// ErrNoBalanceRecord is returned when the ledger has no balance for an address.
var ErrNoBalanceRecord = errors.New("no balance record")

// Config holds dependencies for the fetcher.
type Config struct {
	Client  chain.BalanceReader
	Logger  LogWriter
	Metrics FetchRecorder
}

// Fetcher reads account balances from the ledger.
type Fetcher struct {
	client  chain.BalanceReader
	logger  LogWriter
	metrics FetchRecorder
}

// NewFetcher creates a new balance fetcher.
func NewFetcher(cfg *Config) *Fetcher {
	f := &Fetcher{
		client:  cfg.Client,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
	if f.logger == nil {
		f.logger = nopLogger{}
	}
	if f.metrics == nil {
		f.metrics = metrics.Global
	}
	return f
}

// FetchBalanceMist returns the owner's balance in MIST, or the reason it
// could not be read.
func (f *Fetcher) FetchBalanceMist(ctx context.Context, owner Owner) (*big.Int, error) {
	balance, err := f.client.GetBalance(ctx, owner.SuiAddress())
	if err != nil {
		f.metrics.RecordBalanceFetch(false)
		return nil, err
	}
	f.metrics.RecordBalanceFetch(balance == nil)
	if balance == nil {
		return nil, ErrNoBalanceRecord
	}
	return balance, nil
}

// FetchBalance returns the owner's balance in whole SUI, truncated.
// Any failure, including an absent record, yields 0; the cause is logged.
func (f *Fetcher) FetchBalance(ctx context.Context, owner Owner) uint64 {
	balance, err := f.FetchBalanceMist(ctx, owner)
	if err != nil {
		if ctx.Err() != nil {
			f.logger.Debug("balance fetch for %s canceled: %v", owner.SuiAddress(), err)
			return 0
		}
		f.logger.Error("balance fetch for %s failed: %v", owner.SuiAddress(), err)
		return 0
	}
	return chain.MistToSui(balance)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
