package transaction

import (
	"strconv"

	"github.com/mrz1836/suiwallet/internal/chain"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

func parseMist(amount string) (uint64, error) {
	v, err := strconv.ParseUint(amount, 10, 64)
	if err != nil {
		return 0, walleterr.WithDetails(walleterr.ErrInvalidAmount, map[string]string{"amount": amount})
	}
	return v, nil
}

func parseSui(amount string) (uint64, error) {
	return chain.ParseSui(amount)
}
