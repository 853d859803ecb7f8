package model

import "github.com/lib/pq"

type Customer struct {
	BaseModel
	Name         string         `gorm:"type:varchar(100);not null;index" json:"name" validate:"required"`
	Surname      string         `gorm:"type:varchar(100);not null" json:"surname" validate:"required"`
	PhoneNumbers pq.StringArray `gorm:"type:text[]" json:"phone_numbers" validate:"min=1,dive,required"`
	Industry     *string        `gorm:"type:varchar(100);index" json:"industry"`
	Email        *string        `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Notes        *string        `gorm:"type:text" json:"notes"`
	City         string         `gorm:"type:varchar(100);not null;index" json:"city" validate:"required"`
	Town         string         `gorm:"type:varchar(100);not null" json:"town" validate:"required"`
	AddressName  *string        `gorm:"type:varchar(100)" json:"address_name"`
	Address      string         `gorm:"type:text;not null" json:"address" validate:"required"`

	// Relasi
	Interviews []Interview `gorm:"constraint:OnDelete:CASCADE" json:"interviews,omitempty" validate:"-"`
	Sales      []Sale      `gorm:"constraint:OnDelete:CASCADE" json:"sales,omitempty" validate:"-"`
}

func (c *Customer) FullName() string {
	return c.Name + " " + c.Surname
}
