package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits every stored amount carries.
const MoneyScale int32 = 2

// IsMoneyScale reports whether d has no more than MoneyScale fractional digits.
func IsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}

// FormatMoney renders d with exactly MoneyScale fractional digits.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}
