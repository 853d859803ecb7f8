package model

// City and Town back the customer address pickers.
type City struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null;index" json:"name"`
}

type Town struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	CityID uint   `gorm:"not null;index" json:"city_id"`
	Name   string `gorm:"type:varchar(100);not null" json:"name"`
}
