package pricing

import (
	"github.com/shopspring/decimal"
)

const (
	// DefaultDomesticCategory is the category whose catalog prices are
	// already in the reporting currency (TRY).
	DefaultDomesticCategory = "Lazer Hastanesi"
)

// DefaultRate is the number of TRY per unit of a foreign-priced product.
var DefaultRate = decimal.NewFromInt(40)

// Normalizer converts catalog prices into the reporting currency.
type Normalizer struct {
	Rate             decimal.Decimal
	DomesticCategory string
}

// DefaultNormalizer returns a Normalizer with the built-in rate and domestic category.
func DefaultNormalizer() Normalizer {
	return Normalizer{Rate: DefaultRate, DomesticCategory: DefaultDomesticCategory}
}

// NewNormalizer builds a Normalizer, falling back to the defaults for zero values.
func NewNormalizer(rate decimal.Decimal, domesticCategory string) Normalizer {
	n := DefaultNormalizer()
	if !rate.IsZero() {
		n.Rate = rate
	}
	if domesticCategory != "" {
		n.DomesticCategory = domesticCategory
	}
	return n
}

// Normalize returns rawPrice expressed in the reporting currency.
// A nil category is treated as foreign.
func (n Normalizer) Normalize(rawPrice decimal.Decimal, category *string) decimal.Decimal {
	if category != nil && *category == n.DomesticCategory {
		return rawPrice
	}
	return rawPrice.Mul(n.Rate)
}
