package workset

import (
	"go-sales-crm/internal/model"
	"go-sales-crm/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLine is a draft sale item. UnitPrice starts as the catalog price and
// may be overridden without touching the product.
type SaleLine struct {
	Product   model.Product
	Quantity  int
	UnitPrice decimal.Decimal
}

// SaleItems is the working set behind sale authoring.
type SaleItems struct {
	set *OrderedSet[uuid.UUID, SaleLine]
}

func NewSaleItems() *SaleItems {
	return &SaleItems{
		set: NewOrderedSet(func(l SaleLine) uuid.UUID { return l.Product.ID }),
	}
}

// Add appends p with quantity 1 at its catalog price. Duplicates are ignored.
func (s *SaleItems) Add(p model.Product) bool {
	return s.set.Add(SaleLine{Product: p, Quantity: 1, UnitPrice: p.Price})
}

// Increment adds p, or bumps the quantity of an existing line by one.
func (s *SaleItems) Increment(p model.Product) {
	if s.set.Update(p.ID, func(l *SaleLine) { l.Quantity++ }) {
		return
	}
	s.Add(p)
}

func (s *SaleItems) Remove(productID uuid.UUID) bool { return s.set.Remove(productID) }

// SetQuantity updates a line in place; quantity <= 0 removes it.
// Absent products are ignored.
func (s *SaleItems) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		s.set.Remove(productID)
		return
	}
	s.set.Update(productID, func(l *SaleLine) { l.Quantity = quantity })
}

// SetUnitPrice overrides the snapshot price of one line.
func (s *SaleItems) SetUnitPrice(productID uuid.UUID, price decimal.Decimal) {
	s.set.Update(productID, func(l *SaleLine) { l.UnitPrice = price })
}

func (s *SaleItems) Get(productID uuid.UUID) (SaleLine, bool) { return s.set.Get(productID) }
func (s *SaleItems) Has(productID uuid.UUID) bool             { return s.set.Has(productID) }
func (s *SaleItems) Len() int                                 { return s.set.Len() }
func (s *SaleItems) IsEmpty() bool                            { return s.set.Len() == 0 }
func (s *SaleItems) Items() []SaleLine                        { return s.set.Items() }

// PricingLines projects the draft for the total calculator.
func (s *SaleItems) PricingLines() []pricing.Line {
	items := s.set.Items()
	out := make([]pricing.Line, len(items))
	for i, l := range items {
		out[i] = pricing.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice, Category: l.Product.Category}
	}
	return out
}

// ToModels turns the draft into SaleItem rows for saleID.
func (s *SaleItems) ToModels(saleID uuid.UUID) []model.SaleItem {
	items := s.set.Items()
	out := make([]model.SaleItem, len(items))
	for i, l := range items {
		out[i] = model.SaleItem{
			SaleID:    saleID,
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return out
}
