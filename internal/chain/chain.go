// Package chain holds ledger-agnostic building blocks shared by the Sui
// client and the wallet services: capability interfaces, MIST amount
// handling, retry with backoff, per-endpoint rate limiting, and explorer links.
package chain

import (
	"context"
	"math/big"
)

// SUI amounts are carried in MIST on the wire.
const (
	Decimals    = 9
	MistPerSui  = 1_000_000_000
	Symbol      = "SUI"
	CoinTypeSUI = "0x2::sui::SUI"
)

// BalanceReader provides balance querying capabilities.
type BalanceReader interface {
	// GetBalance returns the total SUI balance of address in MIST.
	// A nil balance with a nil error means the ledger has no record for the address.
	GetBalance(ctx context.Context, address string) (*big.Int, error)
}

// AddressValidator provides address validation.
type AddressValidator interface {
	ValidateAddress(address string) error
}

// Reader combines read-only ledger operations.
type Reader interface {
	BalanceReader
	AddressValidator
}
