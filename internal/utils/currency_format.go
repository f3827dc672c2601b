package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision rounds an amount to the given precision and drops trailing zeros.
// Example: 12.3456 with precision 2 returns "12.35"; 12.5 with precision 2 returns "12.5"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}

// FormatFixed rounds an amount to the given precision and always prints that many decimals.
// Example: 1.1 with precision 4 returns "1.1000"; -7.438 with precision 2 returns "-7.44"
func FormatFixed(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
