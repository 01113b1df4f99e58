package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// CurrencySymbol for all catalog amounts. The network prices in USD only.
	CurrencySymbol = "$"

	// DEFAULT_FLOATING_PRECISION is the display precision for currency amounts
	DEFAULT_FLOATING_PRECISION = 2
)

// FormatAmountToStringWithPrecision formats the amount to string
// rounded to currency precision ex 12.5 -> "12.50"
func FormatAmountToStringWithPrecision(amount decimal.Decimal) string {
	return amount.Round(DEFAULT_FLOATING_PRECISION).StringFixed(DEFAULT_FLOATING_PRECISION)
}

// GetDisplayAmount returns the amount with the currency symbol ex $12.50
func GetDisplayAmount(amount decimal.Decimal) string {
	return fmt.Sprintf("%s%s", CurrencySymbol, FormatAmountToStringWithPrecision(amount))
}
