package pricing

import "github.com/shopspring/decimal"

const CurrencySymbol = "₺"

// Scale is the number of decimal places money columns keep.
const Scale = 2

// Round brings an amount to the stored money scale, rounding half away from
// zero the way numeric(12,2) does on insert.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Scale)
}

// Format renders an already-normalized amount for display, e.g. "₺100.00".
func Format(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(Scale)
}
