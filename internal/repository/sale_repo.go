package repository

import (
	"strings"
	"time"

	"go-sales-crm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaleStatus filters on the canceled flag.
type SaleStatus string

const (
	SaleStatusAny      SaleStatus = ""
	SaleStatusActive   SaleStatus = "active"
	SaleStatusCanceled SaleStatus = "canceled"
)

// SaleFilter narrows the sale list. Total bounds are applied by the service
// since totals are computed, not stored.
type SaleFilter struct {
	CustomerID *uuid.UUID
	Status     SaleStatus
	Platform   model.Platform
	From       *time.Time
	To         *time.Time
	// Search matches customer full name, platform, pay method and the name
	// of any product on the sale.
	Search string
}

type SaleRepository interface {
	// CreateWithItems inserts the sale header and its items in one
	// transaction. Nothing is written if any insert fails.
	CreateWithItems(sale *model.Sale, items []model.SaleItem) error
	// ReplaceWithItems updates the header and swaps the full item set in one transaction.
	ReplaceWithItems(sale *model.Sale, items []model.SaleItem) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindAll(filter SaleFilter) ([]model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) CreateWithItems(sale *model.Sale, items []model.SaleItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(sale).Error; err != nil {
			return err
		}
		return insertItems(tx, sale, items)
	})
}

func (r *saleRepo) ReplaceWithItems(sale *model.Sale, items []model.SaleItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(sale).
			Select("customer_id", "interview_id", "sale_date", "platform", "shipping_cost", "pay_method", "is_canceled", "updated_by", "updated_at").
			Updates(sale)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&model.SaleItem{}).Error; err != nil {
			return err
		}
		return insertItems(tx, sale, items)
	})
}

func insertItems(tx *gorm.DB, sale *model.Sale, items []model.SaleItem) error {
	if len(items) == 0 {
		sale.Items = nil
		return nil
	}
	for i := range items {
		items[i].SaleID = sale.ID
		items[i].CreatedBy = sale.UpdatedBy
		items[i].UpdatedBy = sale.UpdatedBy
	}
	if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
		return err
	}
	sale.Items = items
	return nil
}

func (r *saleRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Sale{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Customer").Preload("Interview").Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindAll(filter SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	query := r.db.Preload("Customer").Preload("Items.Product")

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	switch filter.Status {
	case SaleStatusActive:
		query = query.Where("is_canceled = ?", false)
	case SaleStatusCanceled:
		query = query.Where("is_canceled = ?", true)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.From != nil {
		query = query.Where("sale_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("sale_date <= ?", *filter.To)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where(
			"(LOWER(platform) LIKE ? OR LOWER(COALESCE(pay_method, '')) LIKE ?"+
				" OR EXISTS (SELECT 1 FROM customers c WHERE c.id = sales.customer_id AND LOWER(c.name || ' ' || c.surname) LIKE ?)"+
				" OR EXISTS (SELECT 1 FROM sale_items si JOIN products p ON p.id = si.product_id WHERE si.sale_id = sales.id AND LOWER(p.name) LIKE ?))",
			like, like, like, like,
		)
	}

	err := query.Order("sale_date DESC").Find(&sales).Error
	return sales, err
}
