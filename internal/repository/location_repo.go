package repository

import (
	"go-sales-crm/internal/model"

	"gorm.io/gorm"
)

type LocationRepository interface {
	FindCities() ([]model.City, error)
	FindTowns(cityID uint) ([]model.Town, error)
	// Import upserts a city and its towns by name, returning how many towns were added.
	Import(city string, towns []string) (int, error)
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db}
}

func (r *locationRepo) FindCities() ([]model.City, error) {
	var cities []model.City
	err := r.db.Order("name ASC").Find(&cities).Error
	return cities, err
}

func (r *locationRepo) FindTowns(cityID uint) ([]model.Town, error) {
	var towns []model.Town
	err := r.db.Where("city_id = ?", cityID).Order("name ASC").Find(&towns).Error
	return towns, err
}

func (r *locationRepo) Import(city string, towns []string) (int, error) {
	added := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var c model.City
		if err := tx.Where(model.City{Name: city}).FirstOrCreate(&c).Error; err != nil {
			return err
		}
		for _, name := range towns {
			t := model.Town{CityID: c.ID, Name: name}
			res := tx.Where(model.Town{CityID: c.ID, Name: name}).FirstOrCreate(&t)
			if res.Error != nil {
				return res.Error
			}
			added += int(res.RowsAffected)
		}
		return nil
	})
	return added, err
}
