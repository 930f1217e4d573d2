package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrz1836/suiwallet/internal/chain/sui"
	"github.com/mrz1836/suiwallet/internal/metrics"
	"github.com/mrz1836/suiwallet/internal/output"
	"github.com/mrz1836/suiwallet/internal/wallet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// Config holds dependencies for the executor.
type Config struct {
	Logger  LogWriter
	Metrics TransferRecorder
}

// Executor validates, builds, submits and classifies SUI transfers.
type Executor struct {
	logger  LogWriter
	metrics TransferRecorder
}

// NewExecutor creates a new transfer executor.
func NewExecutor(cfg *Config) *Executor {
	if cfg == nil {
		cfg = &Config{}
	}
	e := &Executor{logger: cfg.Logger, metrics: cfg.Metrics}
	if e.logger == nil {
		e.logger = nopLogger{}
	}
	if e.metrics == nil {
		e.metrics = metrics.Global
	}
	return e
}

// Execute sends amount MIST from sender to recipient and blocks until the
// ledger responds.
//
// Invalid input returns an error before the ledger is called. Once
// submitted, the result is always an Outcome: a ledger error yields a
// Failure outcome with the cause returned alongside for logging.
func (e *Executor) Execute(ctx context.Context, client Ledger, sender *wallet.Account, recipient string, amount uint64) (Outcome, error) {
	if sender == nil {
		return Outcome{}, walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{"field": "sender"})
	}
	to, err := Validate(recipient, amount)
	if err != nil {
		return Outcome{}, err
	}

	tx := sui.NewTransfer(to, amount)
	e.logger.Debug("submitting transfer of %d MIST from %s to %s",
		amount, output.ShortAddress(sender.Address), output.ShortAddress(to.String()))

	resp, err := client.SignAndExecute(ctx, sender, tx)
	if err != nil {
		e.logger.Error("transfer submission failed: %v", err)
		e.metrics.RecordTransfer(false)
		return Outcome{Status: StatusFailure}, fmt.Errorf("%w: %w", walleterr.ErrTransactionFailed, err)
	}

	outcome := Classify(resp)
	switch {
	case resp == nil:
		e.logger.Error("transfer rejected: empty ledger response")
	case !outcome.Succeeded():
		e.logger.Error("transfer rejected: %s", strings.Join(resp.Errors, "; "))
	default:
		e.logger.Debug("transfer executed: digest=%q", outcome.Digest)
	}
	e.metrics.RecordTransfer(outcome.Succeeded())
	return outcome, nil
}

// Classify maps a ledger response to an Outcome. Any reported error makes
// it a Failure, whether or not a digest is present; an empty error list is
// not a reported error.
func Classify(resp *sui.ExecuteResponse) Outcome {
	if resp == nil || len(resp.Errors) > 0 {
		return Outcome{Status: StatusFailure}
	}
	return Outcome{Status: StatusSuccess, Digest: resp.Digest}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
