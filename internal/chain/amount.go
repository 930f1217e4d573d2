package chain

import (
	"math"
	"math/big"
	"strings"

	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

//nolint:gochecknoglobals // constant divisor
var mistPerSui = big.NewInt(MistPerSui)

// MistToSui converts MIST to whole SUI, truncating any fraction.
// Nil and negative inputs yield 0; values past uint64 saturate.
func MistToSui(mist *big.Int) uint64 {
	if mist == nil || mist.Sign() <= 0 {
		return 0
	}
	whole := new(big.Int).Quo(mist, mistPerSui)
	if !whole.IsUint64() {
		return math.MaxUint64
	}
	return whole.Uint64()
}

// ParseSui parses a decimal SUI amount such as "1.25" into MIST.
func ParseSui(amount string) (uint64, error) {
	v, err := ParseDecimalAmount(strings.TrimSpace(amount), Decimals, walleterr.ErrInvalidAmount)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, walleterr.WithDetails(walleterr.ErrInvalidAmount, map[string]string{"amount": amount})
	}
	return v.Uint64(), nil
}

// FormatMist renders a MIST amount as a decimal SUI string.
func FormatMist(mist uint64) string {
	return FormatDecimalAmount(new(big.Int).SetUint64(mist), Decimals)
}

// ParseDecimalAmount parses a non-negative decimal string into base units with
// the given number of decimal places. Extra fractional digits are truncated.
func ParseDecimalAmount(amount string, decimalPlaces int, invalidAmountErr error) (*big.Int, error) {
	if amount == "" || strings.HasPrefix(amount, "-") || strings.HasPrefix(amount, "+") {
		return nil, invalidAmountErr
	}

	intPart, decPart, hasDot := strings.Cut(amount, ".")
	if strings.Contains(decPart, ".") || (hasDot && intPart == "" && decPart == "") {
		return nil, invalidAmountErr
	}
	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || !allDigits(decPart) {
		return nil, invalidAmountErr
	}

	if len(decPart) > decimalPlaces {
		decPart = decPart[:decimalPlaces]
	}
	decPart += strings.Repeat("0", decimalPlaces-len(decPart))

	result, ok := new(big.Int).SetString(intPart+decPart, 10)
	if !ok {
		return nil, invalidAmountErr
	}
	return result, nil
}

// FormatDecimalAmount renders base units with the given decimals, trimming
// trailing fractional zeros but keeping at least one.
func FormatDecimalAmount(amount *big.Int, decimalPlaces int) string {
	if amount == nil {
		return "0"
	}
	if amount.Sign() < 0 {
		return "-" + FormatDecimalAmount(new(big.Int).Neg(amount), decimalPlaces)
	}

	str := amount.String()
	if len(str) <= decimalPlaces {
		str = strings.Repeat("0", decimalPlaces-len(str)+1) + str
	}

	point := len(str) - decimalPlaces
	frac := strings.TrimRight(str[point:], "0")
	if frac == "" {
		frac = "0"
	}
	return str[:point] + "." + frac
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
