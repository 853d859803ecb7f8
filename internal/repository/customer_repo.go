package repository

import (
	"strings"

	"go-sales-crm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerFilter narrows the customer list. Zero values mean "no filter".
type CustomerFilter struct {
	Search   string
	Industry string
	City     string
	HasEmail *bool
}

type CustomerRepository interface {
	Create(customer *model.Customer) error
	Update(customer *model.Customer) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindDetail(id uuid.UUID) (*model.Customer, error)
	FindAll(filter CustomerFilter) ([]model.Customer, error)
	Count() (int64, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Omit("Interviews", "Sales").Create(customer).Error
}

// Update writes the editable columns of an existing row. A row deleted in the
// meantime is reported as gorm.ErrRecordNotFound instead of being re-inserted.
func (r *customerRepo) Update(customer *model.Customer) error {
	res := r.db.Model(customer).
		Select("name", "surname", "phone_numbers", "industry", "email", "notes",
			"city", "town", "address_name", "address", "updated_by", "updated_at").
		Updates(customer)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the row; interviews and sales go with it through the FK cascade.
func (r *customerRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindDetail loads the customer with their sales (items and products) and
// interviews, newest first.
func (r *customerRepo) FindDetail(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.
		Preload("Sales", func(db *gorm.DB) *gorm.DB { return db.Order("sale_date DESC") }).
		Preload("Sales.Items.Product").
		Preload("Interviews", func(db *gorm.DB) *gorm.DB { return db.Order("interview_date DESC") }).
		Preload("Interviews.Product").
		First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindAll(filter CustomerFilter) ([]model.Customer, error) {
	var customers []model.Customer

	query := r.db.Model(&model.Customer{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR array_to_string(phone_numbers, ' ') LIKE ?",
			like, like, "%"+s+"%",
		)
	}
	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.HasEmail != nil {
		if *filter.HasEmail {
			query = query.Where("email IS NOT NULL AND email <> ''")
		} else {
			query = query.Where("email IS NULL OR email = ''")
		}
	}

	if err := query.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Customer{}).Count(&n).Error
	return n, err
}
