package model

import (
	"time"

	"github.com/google/uuid"
)

// Interview is a recorded sales conversation with a customer.
type Interview struct {
	BaseModel
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer      *Customer `json:"customer,omitempty" validate:"-"`
	Operator      string    `gorm:"type:varchar(255);not null" json:"operator" validate:"required"`
	Notes         *string   `gorm:"type:text" json:"notes"`
	SaleSucceeded bool      `gorm:"not null;default:false" json:"sale_succeeded"`
	InterviewDate time.Time `gorm:"not null;index" json:"interview_date"`

	// Primary discussed product, kept in sync with the first discussed product.
	ProductID *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Product   *Product   `gorm:"constraint:OnDelete:SET NULL" json:"product,omitempty" validate:"-"`

	Sales []Sale `gorm:"foreignKey:InterviewID;constraint:OnDelete:SET NULL" json:"sales,omitempty" validate:"-"`
}
