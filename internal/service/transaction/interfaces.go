package transaction

import (
	"context"

	"github.com/mrz1836/suiwallet/internal/chain/sui"
)

// Ledger signs and submits programmable transactions.
// *sui.Client satisfies it.
type Ledger interface {
	SignAndExecute(ctx context.Context, signer sui.Signer, tx sui.ProgrammableTransaction) (*sui.ExecuteResponse, error)
}

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// TransferRecorder counts submitted transfers by outcome.
type TransferRecorder interface {
	RecordTransfer(success bool)
}
