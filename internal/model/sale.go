package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Platform is the channel a sale was made through.
type Platform string

const (
	PlatformPhone       Platform = "phone"
	PlatformF2F         Platform = "f2f"
	PlatformTrendyol    Platform = "trendyol"
	PlatformHepsiburada Platform = "hepsiburada"
	PlatformN11         Platform = "n11"
)

var Platforms = []Platform{PlatformPhone, PlatformF2F, PlatformTrendyol, PlatformHepsiburada, PlatformN11}

func (p Platform) Valid() bool {
	for _, v := range Platforms {
		if p == v {
			return true
		}
	}
	return false
}

type Sale struct {
	BaseModel
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer     *Customer       `json:"customer,omitempty" validate:"-"`
	InterviewID  *uuid.UUID      `gorm:"type:uuid;index" json:"interview_id"`
	Interview    *Interview      `json:"interview,omitempty" validate:"-"`
	SaleDate     time.Time       `gorm:"not null;index" json:"sale_date"`
	Platform     Platform        `gorm:"type:varchar(20);not null;default:phone" json:"platform" validate:"required,platform"`
	ShippingCost decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"shipping_cost"`
	PayMethod    *string         `gorm:"type:varchar(50)" json:"pay_method"`
	IsCanceled   bool            `gorm:"not null;default:false" json:"is_canceled"`

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"sale_items,omitempty" validate:"-"`
}

// SaleItem is one line of a sale. UnitPrice is a snapshot taken when the
// line was written and is never re-read from the product.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT" json:"product,omitempty" validate:"-"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
}
