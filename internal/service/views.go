package service

import (
	"go-sales-crm/internal/events"
	"go-sales-crm/internal/model"
	"go-sales-crm/internal/pricing"

	"github.com/shopspring/decimal"
)

// SaleView is a sale with its computed total in the reporting currency.
type SaleView struct {
	model.Sale
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
}

// ProductView is a product with its normalized price.
type ProductView struct {
	model.Product
	DisplayPrice     decimal.Decimal `json:"display_price"`
	DisplayPriceText string          `json:"display_price_text"`
}

// saleLines projects persisted items for the total calculator. Items must
// have Product preloaded for the category to be honoured.
func saleLines(items []model.SaleItem) []pricing.Line {
	lines := make([]pricing.Line, len(items))
	for i, it := range items {
		var category *string
		if it.Product != nil {
			category = it.Product.Category
		}
		lines[i] = pricing.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice, Category: category}
	}
	return lines
}

func newSaleView(n pricing.Normalizer, sale model.Sale) SaleView {
	total := n.Total(saleLines(sale.Items), sale.ShippingCost)
	return SaleView{Sale: sale, Total: total, TotalDisplay: pricing.Format(total)}
}

func newProductView(n pricing.Normalizer, p model.Product) ProductView {
	price := n.Normalize(p.Price, p.Category)
	return ProductView{Product: p, DisplayPrice: price, DisplayPriceText: pricing.Format(price)}
}

func actorOf(p model.Principal) events.Actor {
	return events.Actor{ID: p.Actor(), Name: p.FullName, Email: p.Email}
}
