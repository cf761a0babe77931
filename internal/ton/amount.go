package ton

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for amounts that cannot be sent on-chain.
var ErrInvalidAmount = errors.New("invalid amount")

// NanoDecimals is the number of fraction digits of TON and of the DUPC jetton.
const NanoDecimals int32 = 9

// ToUnits converts a human-readable amount ("1.5") into the smallest on-chain
// units (1500000000 for 9 decimals). Digits beyond the precision are truncated.
func ToUnits(amount string, decimals int32) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %v", ErrInvalidAmount, amount, err)
	}

	units := d.Shift(decimals).Truncate(0)
	if !units.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w %q: must be positive", ErrInvalidAmount, amount)
	}
	return units, nil
}

// FromUnits converts on-chain units back into a human-readable amount.
func FromUnits(units string, decimals int32) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(units)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %v", ErrInvalidAmount, units, err)
	}
	return d.Shift(-decimals), nil
}
