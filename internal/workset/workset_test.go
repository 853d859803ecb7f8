package workset

import (
	"testing"

	"go-sales-crm/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name, price string, category *string) model.Product {
	p := model.Product{Name: name, Price: decimal.RequireFromString(price), Category: category}
	p.ID = uuid.New()
	return p
}

func names(ps []model.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestOrderedSetKeepsInsertionOrderAcrossRemove(t *testing.T) {
	s := NewOrderedSet(func(v string) string { return v })
	for _, v := range []string{"a", "b", "c", "d"} {
		require.True(t, s.Add(v))
	}
	assert.True(t, s.Remove("b"))
	assert.False(t, s.Remove("b"))
	assert.Equal(t, []string{"a", "c", "d"}, s.Items())

	// index must follow the shift
	assert.True(t, s.Update("d", func(v *string) { *v = "d" }))
	got, ok := s.Get("c")
	require.True(t, ok)
	assert.Equal(t, "c", got)

	assert.True(t, s.Remove("a"))
	first, ok := s.First()
	require.True(t, ok)
	assert.Equal(t, "c", first)
}

func TestDiscussedProductsDedupesByID(t *testing.T) {
	p1 := product("P1", "100", nil)
	p2 := product("P2", "5", nil)

	d := NewDiscussedProducts()
	assert.True(t, d.Add(p1))
	assert.True(t, d.Add(p2))

	renamed := p1
	renamed.Name = "P1 again"
	assert.False(t, d.Add(renamed))

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"P1", "P2"}, names(d.Products()))
}

func TestDiscussedProductsSingleDuplicate(t *testing.T) {
	p := product("P", "1", nil)
	d := NewDiscussedProducts(p, p)
	assert.Equal(t, 1, d.Len())
	first, ok := d.First()
	require.True(t, ok)
	assert.Equal(t, p.ID, first.ID)
}

func TestDiscussedProductsFirstIDFollowsRemoval(t *testing.T) {
	p1 := product("P1", "1", nil)
	p2 := product("P2", "2", nil)
	p3 := product("P3", "3", nil)
	d := NewDiscussedProducts(p1, p2, p3)

	require.NotNil(t, d.FirstID())
	assert.Equal(t, p1.ID, *d.FirstID())

	d.Remove(p1.ID)
	assert.Equal(t, p2.ID, *d.FirstID())
	assert.Equal(t, []string{"P2", "P3"}, names(d.Products()))

	d.Remove(uuid.New())
	assert.Equal(t, 2, d.Len())

	d.Remove(p2.ID)
	d.Remove(p3.ID)
	assert.True(t, d.IsEmpty())
	assert.Nil(t, d.FirstID())
}

func TestSaleItemsSetQuantity(t *testing.T) {
	p := product("P", "10", nil)
	s := NewSaleItems()
	s.Add(p)

	s.SetQuantity(p.ID, 3)
	line, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)

	s.SetQuantity(p.ID, 0)
	assert.False(t, s.Has(p.ID))

	s.SetQuantity(p.ID, 5)
	assert.Equal(t, 0, s.Len())

	s.Add(p)
	s.SetQuantity(p.ID, -2)
	assert.True(t, s.IsEmpty())
}

func TestSaleItemsSetUnitPriceLeavesCatalogAlone(t *testing.T) {
	p := product("P", "10", nil)
	s := NewSaleItems()
	s.Add(p)
	s.SetUnitPrice(p.ID, decimal.RequireFromString("7.5"))

	line, _ := s.Get(p.ID)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("7.5")))
	assert.True(t, line.Product.Price.Equal(decimal.RequireFromString("10")))
	assert.True(t, p.Price.Equal(decimal.RequireFromString("10")))

	s.SetUnitPrice(uuid.New(), decimal.NewFromInt(1))
	assert.Equal(t, 1, s.Len())
}

func TestSaleItemsIncrementKeepsPosition(t *testing.T) {
	a := product("A", "1", nil)
	b := product("B", "2", nil)
	s := NewSaleItems()
	s.Increment(a)
	s.Increment(b)
	s.Increment(a)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Product.Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestSaleItemsProjections(t *testing.T) {
	domestic := "Lazer Hastanesi"
	a := product("A", "100", &domestic)
	b := product("B", "5", nil)
	s := NewSaleItems()
	s.Add(a)
	s.Add(b)
	s.SetQuantity(b.ID, 2)

	lines := s.PricingLines()
	require.Len(t, lines, 2)
	assert.Equal(t, &domestic, lines[0].Category)
	assert.Equal(t, 2, lines[1].Quantity)

	saleID := uuid.New()
	rows := s.ToModels(saleID)
	require.Len(t, rows, 2)
	assert.Equal(t, saleID, rows[0].SaleID)
	assert.Equal(t, a.ID, rows[0].ProductID)
	assert.True(t, rows[1].UnitPrice.Equal(decimal.NewFromInt(5)))
}
