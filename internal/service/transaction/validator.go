package transaction

import (
	"strings"

	"github.com/mrz1836/suiwallet/internal/chain/sui"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// Validate checks a transfer before anything reaches the ledger and returns
// the parsed recipient.
func Validate(recipient string, amount uint64) (sui.Address, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return sui.Address{}, walleterr.ErrInvalidRecipient
	}
	if amount == 0 {
		return sui.Address{}, walleterr.ErrAmountRequired
	}

	addr, err := sui.ParseAddress(recipient)
	if err != nil {
		return sui.Address{}, walleterr.WithSuggestion(err,
			"Sui addresses are 0x followed by up to 64 hex characters")
	}
	return addr, nil
}

// ParseAmount parses a MIST integer or, with inSui set, a decimal SUI amount.
func ParseAmount(amount string, inSui bool) (uint64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, walleterr.ErrAmountRequired
	}
	if inSui {
		return parseSui(amount)
	}
	return parseMist(amount)
}
