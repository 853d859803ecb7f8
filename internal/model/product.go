package model

import "github.com/shopspring/decimal"

// Product is a catalog entry. Price is in the currency implied by Category;
// see pricing.Normalizer.
type Product struct {
	BaseModel
	Name     string          `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Category *string         `gorm:"type:varchar(100);index" json:"category"`
	ImageURL *string         `gorm:"type:text" json:"image_url,omitempty"`
}

// Category is a product category name. Products reference it by name.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}
