package service

import (
	"sync"
	"time"

	"go-sales-crm/internal/events"
	"go-sales-crm/internal/model"
	"go-sales-crm/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockInterviewRepo struct{ mock.Mock }

func (m *mockInterviewRepo) Create(interview *model.Interview) error {
	args := m.Called(interview)
	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}
	return args.Error(0)
}

// UpdateLocked applies fn to a copy of the configured row, like the real
// repository does inside its transaction.
func (m *mockInterviewRepo) UpdateLocked(id uuid.UUID, apply func(*model.Interview) error) (*model.Interview, error) {
	args := m.Called(id)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	current := *args.Get(0).(*model.Interview)
	if err := apply(&current); err != nil {
		return nil, err
	}
	return &current, nil
}

func (m *mockInterviewRepo) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

func (m *mockInterviewRepo) FindByID(id uuid.UUID) (*model.Interview, error) {
	args := m.Called(id)
	i, _ := args.Get(0).(*model.Interview)
	return i, args.Error(1)
}

func (m *mockInterviewRepo) FindAll(filter repository.InterviewFilter) ([]model.Interview, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Interview), args.Error(1)
}

func (m *mockInterviewRepo) Operators() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockInterviewRepo) CountSince(since time.Time) (int64, int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(product *model.Product) error {
	return m.Called(product).Error(0)
}

func (m *mockProductRepo) FindAll(filter repository.ProductFilter) ([]model.Product, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	args := m.Called(id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	args := m.Called(ids)
	found, _ := args.Get(0).(map[uuid.UUID]model.Product)
	return found, args.Error(1)
}

func (m *mockProductRepo) FindCategories() ([]model.Category, error) {
	args := m.Called()
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *mockProductRepo) SeedCategories(names []string) error {
	return m.Called(names).Error(0)
}

type mockSaleRepo struct{ mock.Mock }

// CreateWithItems mimics the repository: IDs are assigned and items attached
// only when the write succeeds.
func (m *mockSaleRepo) CreateWithItems(sale *model.Sale, items []model.SaleItem) error {
	if err := m.Called(sale, items).Error(0); err != nil {
		return err
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	for i := range items {
		items[i].SaleID = sale.ID
	}
	sale.Items = items
	return nil
}

func (m *mockSaleRepo) ReplaceWithItems(sale *model.Sale, items []model.SaleItem) error {
	if err := m.Called(sale, items).Error(0); err != nil {
		return err
	}
	sale.Items = items
	return nil
}

func (m *mockSaleRepo) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

func (m *mockSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	args := m.Called(id)
	s, _ := args.Get(0).(*model.Sale)
	return s, args.Error(1)
}

func (m *mockSaleRepo) FindAll(filter repository.SaleFilter) ([]model.Sale, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Sale), args.Error(1)
}

type mockCustomerRepo struct{ mock.Mock }

func (m *mockCustomerRepo) Create(customer *model.Customer) error {
	return m.Called(customer).Error(0)
}

func (m *mockCustomerRepo) Update(customer *model.Customer) error {
	return m.Called(customer).Error(0)
}

func (m *mockCustomerRepo) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

func (m *mockCustomerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	args := m.Called(id)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerRepo) FindDetail(id uuid.UUID) (*model.Customer, error) {
	args := m.Called(id)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerRepo) FindAll(filter repository.CustomerFilter) ([]model.Customer, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Create(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

func (m *mockUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return m.Called(userID, hashedPassword).Error(0)
}

func (m *mockUserRepo) FindAll() ([]model.User, error) {
	args := m.Called()
	return args.Get(0).([]model.User), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingPublisher) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type + ":" + ev.Action
	}
	return out
}

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func product(name, price string, category *string) model.Product {
	p := model.Product{Name: name, Price: dec(price), Category: category}
	p.ID = uuid.New()
	return p
}

var (
	admin    = model.Principal{UserID: uuid.New(), Email: "admin@example.com", FullName: "Admin", Role: model.RoleAdmin}
	operator = model.Principal{UserID: uuid.New(), Email: "ayse@example.com", FullName: "Ayşe Yılmaz", Role: model.RoleUser}
	stranger = model.Principal{UserID: uuid.New(), Email: "mehmet@example.com", FullName: "Mehmet Kaya", Role: model.RoleUser}
)
