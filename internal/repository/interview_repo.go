package repository

import (
	"strings"
	"time"

	"go-sales-crm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterviewStatus filters on the sale outcome.
type InterviewStatus string

const (
	InterviewStatusAny     InterviewStatus = ""
	InterviewStatusSuccess InterviewStatus = "success"
	InterviewStatusFailed  InterviewStatus = "failed"
)

// InterviewFilter narrows the interview list. Zero values mean "no filter".
type InterviewFilter struct {
	CustomerID *uuid.UUID
	Status     InterviewStatus
	Operator   string
	From       *time.Time
	To         *time.Time
	// Search matches operator, notes, customer full name and product name.
	Search string
}

type InterviewRepository interface {
	Create(interview *model.Interview) error
	// UpdateLocked loads the interview under a row lock, hands it to apply,
	// and saves the result in the same transaction. apply sees the stored
	// values, so callers can read the previous state there.
	UpdateLocked(id uuid.UUID, apply func(current *model.Interview) error) (*model.Interview, error)
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Interview, error)
	FindAll(filter InterviewFilter) ([]model.Interview, error)
	// Operators lists the distinct operator names, alphabetically.
	Operators() ([]string, error)
	CountSince(since time.Time) (total int64, succeeded int64, err error)
}

type interviewRepo struct {
	db *gorm.DB
}

func NewInterviewRepo(db *gorm.DB) InterviewRepository {
	return &interviewRepo{db}
}

func (r *interviewRepo) Create(interview *model.Interview) error {
	return r.db.Omit(clause.Associations).Create(interview).Error
}

func (r *interviewRepo) UpdateLocked(id uuid.UUID, apply func(current *model.Interview) error) (*model.Interview, error) {
	var updated model.Interview
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&updated, "id = ?", id).Error; err != nil {
			return err
		}
		if err := apply(&updated); err != nil {
			return err
		}
		return tx.Model(&updated).Select("operator", "notes", "sale_succeeded", "product_id", "interview_date", "updated_by").
			Updates(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *interviewRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Interview{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *interviewRepo) FindByID(id uuid.UUID) (*model.Interview, error) {
	var interview model.Interview
	err := r.db.Preload("Customer").Preload("Product").
		Preload("Sales", func(db *gorm.DB) *gorm.DB { return db.Order("sale_date DESC") }).
		First(&interview, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepo) FindAll(filter InterviewFilter) ([]model.Interview, error) {
	var interviews []model.Interview
	query := r.db.Preload("Customer").Preload("Product")

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	switch filter.Status {
	case InterviewStatusSuccess:
		query = query.Where("sale_succeeded = ?", true)
	case InterviewStatusFailed:
		query = query.Where("sale_succeeded = ?", false)
	}
	if filter.Operator != "" {
		query = query.Where("operator = ?", filter.Operator)
	}
	if filter.From != nil {
		query = query.Where("interview_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("interview_date <= ?", *filter.To)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where(
			"(LOWER(operator) LIKE ? OR LOWER(COALESCE(notes, '')) LIKE ?"+
				" OR EXISTS (SELECT 1 FROM customers c WHERE c.id = interviews.customer_id AND LOWER(c.name || ' ' || c.surname) LIKE ?)"+
				" OR EXISTS (SELECT 1 FROM products p WHERE p.id = interviews.product_id AND LOWER(p.name) LIKE ?))",
			like, like, like, like,
		)
	}

	err := query.Order("interview_date DESC").Find(&interviews).Error
	return interviews, err
}

func (r *interviewRepo) Operators() ([]string, error) {
	var operators []string
	err := r.db.Model(&model.Interview{}).
		Where("operator <> ''").
		Distinct("operator").
		Order("operator ASC").
		Pluck("operator", &operators).Error
	return operators, err
}

// CountSince counts interviews held since the given time and how many of them succeeded.
func (r *interviewRepo) CountSince(since time.Time) (int64, int64, error) {
	var total, succeeded int64
	base := r.db.Model(&model.Interview{}).Where("interview_date >= ?", since)
	if err := base.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&model.Interview{}).
		Where("interview_date >= ? AND sale_succeeded = ?", since, true).
		Count(&succeeded).Error; err != nil {
		return 0, 0, err
	}
	return total, succeeded, nil
}
