package database

import (
	"go-sales-crm/internal/model"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
var Models = []interface{}{
	&model.User{},
	&model.Category{},
	&model.Product{},
	&model.City{},
	&model.Town{},
	&model.Customer{},
	&model.Interview{},
	&model.Sale{},
	&model.SaleItem{},
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
