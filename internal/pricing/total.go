package pricing

import (
	"github.com/shopspring/decimal"
)

// Line is one priced line of a sale, committed or draft.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
	Category  *string
}

// Total sums quantity * normalized unit price over items and adds shipping.
// Quantities are taken as given.
func (n Normalizer) Total(items []Line, shipping decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(n.Normalize(it.UnitPrice, it.Category).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.Add(shipping)
}
