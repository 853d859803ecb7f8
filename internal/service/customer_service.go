package service

import (
	"fmt"
	"strings"

	"go-sales-crm/internal/events"
	"go-sales-crm/internal/model"
	"go-sales-crm/internal/pricing"
	"go-sales-crm/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type CustomerService interface {
	ListCustomers(filter repository.CustomerFilter) ([]model.Customer, error)
	GetCustomer(id uuid.UUID) (*CustomerDetail, error)
	CreateCustomer(p model.Principal, req *CustomerRequest) (*model.Customer, error)
	UpdateCustomer(p model.Principal, id uuid.UUID, req *CustomerRequest) (*model.Customer, error)
	DeleteCustomer(p model.Principal, id uuid.UUID) error
}

type CustomerRequest struct {
	Name         string   `json:"name"`
	Surname      string   `json:"surname"`
	PhoneNumbers []string `json:"phone_numbers"`
	Industry     *string  `json:"industry"`
	Email        *string  `json:"email"`
	Notes        *string  `json:"notes"`
	City         string   `json:"city"`
	Town         string   `json:"town"`
	AddressName  *string  `json:"address_name"`
	Address      string   `json:"address"`
}

// CustomerDetail is a customer with priced sales and interviews, newest first.
type CustomerDetail struct {
	*model.Customer
	Sales      []SaleView `json:"sales"`
	TotalSpent string     `json:"total_spent"`
}

type customerService struct {
	repo       repository.CustomerRepository
	normalizer pricing.Normalizer
	publisher  events.Publisher
}

func NewCustomerService(repo repository.CustomerRepository, n pricing.Normalizer, pub events.Publisher) CustomerService {
	return &customerService{repo: repo, normalizer: n, publisher: pub}
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// toModel trims input and drops blank phone entries before validation.
func (r *CustomerRequest) toModel() *model.Customer {
	phones := make(pq.StringArray, 0, len(r.PhoneNumbers))
	for _, ph := range r.PhoneNumbers {
		if ph = strings.TrimSpace(ph); ph != "" {
			phones = append(phones, ph)
		}
	}
	return &model.Customer{
		Name:         strings.TrimSpace(r.Name),
		Surname:      strings.TrimSpace(r.Surname),
		PhoneNumbers: phones,
		Industry:     optional(r.Industry),
		Email:        optional(r.Email),
		Notes:        optional(r.Notes),
		City:         strings.TrimSpace(r.City),
		Town:         strings.TrimSpace(r.Town),
		AddressName:  optional(r.AddressName),
		Address:      strings.TrimSpace(r.Address),
	}
}

func (s *customerService) ListCustomers(filter repository.CustomerFilter) ([]model.Customer, error) {
	customers, err := s.repo.FindAll(filter)
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return customers, nil
}

func (s *customerService) GetCustomer(id uuid.UUID) (*CustomerDetail, error) {
	customer, err := s.repo.FindDetail(id)
	if err != nil {
		return nil, storeErr(err, ErrCustomerNotFound, "get customer")
	}

	detail := &CustomerDetail{Customer: customer, Sales: make([]SaleView, len(customer.Sales))}
	spent := decimal.Zero
	for i, sale := range customer.Sales {
		detail.Sales[i] = newSaleView(s.normalizer, sale)
		if !sale.IsCanceled {
			spent = spent.Add(detail.Sales[i].Total)
		}
	}
	detail.TotalSpent = pricing.Format(spent)
	customer.Sales = nil
	return detail, nil
}

func (s *customerService) CreateCustomer(p model.Principal, req *CustomerRequest) (*model.Customer, error) {
	customer := req.toModel()
	if len(customer.PhoneNumbers) == 0 {
		return nil, invalid("at least one phone number is required")
	}
	if err := validate(customer); err != nil {
		return nil, err
	}
	customer.Stamp(p.Actor())

	if err := s.repo.Create(customer); err != nil {
		return nil, errors.Wrap(err, "create customer")
	}
	s.publisher.Publish(events.New(events.TypeCustomer, events.ActionCreated, customer.ID, actorOf(p),
		fmt.Sprintf("%s added customer %s", p.FullName, customer.FullName()), customer))
	return customer, nil
}

func (s *customerService) UpdateCustomer(p model.Principal, id uuid.UUID, req *CustomerRequest) (*model.Customer, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, ErrCustomerNotFound, "load customer")
	}

	customer := req.toModel()
	if len(customer.PhoneNumbers) == 0 {
		return nil, invalid("at least one phone number is required")
	}
	if err := validate(customer); err != nil {
		return nil, err
	}
	customer.BaseModel = existing.BaseModel
	customer.UpdatedBy = p.Actor()

	if err := s.repo.Update(customer); err != nil {
		return nil, storeErr(err, ErrCustomerNotFound, "update customer")
	}
	s.publisher.Publish(events.New(events.TypeCustomer, events.ActionUpdated, customer.ID, actorOf(p),
		fmt.Sprintf("%s updated customer %s", p.FullName, customer.FullName()), customer))
	return customer, nil
}

func (s *customerService) DeleteCustomer(p model.Principal, id uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if err := s.repo.Delete(id); err != nil {
		return storeErr(err, ErrCustomerNotFound, "delete customer")
	}
	s.publisher.Publish(events.New(events.TypeCustomer, events.ActionDeleted, id, actorOf(p),
		fmt.Sprintf("%s deleted a customer", p.FullName), nil))
	return nil
}
