package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-sales-crm/internal/model"
	"go-sales-crm/internal/repository"
	"go-sales-crm/internal/service"
	"go-sales-crm/pkg/jwt"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminPrincipal = model.Principal{UserID: uuid.New(), Email: "admin@example.com", FullName: "Admin", Role: model.RoleAdmin}
	userPrincipal  = model.Principal{UserID: uuid.New(), Email: "ayse@example.com", FullName: "Ayşe", Role: model.RoleUser}
)

// Stubs embed the service interface so only the methods a test sets are callable.

type stubAuth struct{ service.AuthService }

func (stubAuth) Authenticate(token string) (model.Principal, error) {
	switch token {
	case "admin-token":
		return adminPrincipal, nil
	case "user-token":
		return userPrincipal, nil
	}
	return model.Principal{}, jwt.ErrInvalidToken
}

type stubCustomers struct {
	service.CustomerService
	create  func(p model.Principal, req *service.CustomerRequest) (*model.Customer, error)
	deleted []uuid.UUID
}

func (s *stubCustomers) CreateCustomer(p model.Principal, req *service.CustomerRequest) (*model.Customer, error) {
	return s.create(p, req)
}

func (s *stubCustomers) DeleteCustomer(p model.Principal, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCustomers) ListCustomers(filter repository.CustomerFilter) ([]model.Customer, error) {
	return []model.Customer{}, nil
}

type stubInterviews struct {
	service.InterviewService
	update  func(p model.Principal, id uuid.UUID, req *service.InterviewRequest) (*service.InterviewResult, error)
	filters []repository.InterviewFilter
}

func (s *stubInterviews) ListInterviews(filter repository.InterviewFilter) ([]model.Interview, error) {
	s.filters = append(s.filters, filter)
	return []model.Interview{}, nil
}

func (s *stubInterviews) ListOperators() ([]string, error) {
	return []string{"Ayşe Yılmaz"}, nil
}

func (s *stubInterviews) UpdateInterview(p model.Principal, id uuid.UUID, req *service.InterviewRequest) (*service.InterviewResult, error) {
	return s.update(p, id, req)
}

type stubSales struct {
	service.SaleService
	get     func(id uuid.UUID) (*service.SaleView, error)
	queries []service.SaleQuery
}

func (s *stubSales) ListSales(query service.SaleQuery) ([]service.SaleView, error) {
	s.queries = append(s.queries, query)
	return []service.SaleView{}, nil
}

func (s *stubSales) GetSale(id uuid.UUID) (*service.SaleView, error) { return s.get(id) }

func newTestApp(h Handlers) *fiber.App {
	if h.Auth == nil {
		h.Auth = NewAuthHandler(stubAuth{})
	}
	if h.Customer == nil {
		h.Customer = NewCustomerHandler(&stubCustomers{})
	}
	if h.Interview == nil {
		h.Interview = NewInterviewHandler(&stubInterviews{})
	}
	if h.Sale == nil {
		h.Sale = NewSaleHandler(&stubSales{})
	}
	app := fiber.New()
	RegisterRoutes(app, h, stubAuth{})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(Handlers{})

	status, body := do(t, app, http.MethodGet, "/api/v1/customers", "", nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Missing authorization token", body["error"])

	status, _ = do(t, app, http.MethodGet, "/api/v1/customers", "bogus", nil)
	assert.Equal(t, 401, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/customers", "user-token", nil)
	assert.Equal(t, 200, status)
}

func TestDeleteCustomerRequiresAdmin(t *testing.T) {
	customers := &stubCustomers{}
	app := newTestApp(Handlers{Customer: NewCustomerHandler(customers)})
	id := uuid.New()

	status, _ := do(t, app, http.MethodDelete, "/api/v1/customers/"+id.String(), "user-token", nil)
	assert.Equal(t, 403, status)
	assert.Empty(t, customers.deleted)

	status, _ = do(t, app, http.MethodDelete, "/api/v1/customers/"+id.String(), "admin-token", nil)
	assert.Equal(t, 200, status)
	assert.Equal(t, []uuid.UUID{id}, customers.deleted)

	status, _ = do(t, app, http.MethodDelete, "/api/v1/customers/not-a-uuid", "admin-token", nil)
	assert.Equal(t, 400, status)
}

func TestCreateCustomerPassesPrincipalAndMapsValidation(t *testing.T) {
	var seen model.Principal
	customers := &stubCustomers{create: func(p model.Principal, req *service.CustomerRequest) (*model.Customer, error) {
		seen = p
		if len(req.PhoneNumbers) == 0 {
			return nil, &service.ValidationError{Message: "at least one phone number is required"}
		}
		return &model.Customer{Name: req.Name}, nil
	}}
	app := newTestApp(Handlers{Customer: NewCustomerHandler(customers)})

	status, body := do(t, app, http.MethodPost, "/api/v1/customers", "user-token", map[string]interface{}{"name": "Zeynep"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "at least one phone number is required", body["error"])
	assert.Equal(t, userPrincipal, seen)

	status, body = do(t, app, http.MethodPost, "/api/v1/customers", "user-token",
		map[string]interface{}{"name": "Zeynep", "phone_numbers": []string{"0532"}})
	assert.Equal(t, 201, status)
	assert.Equal(t, "Customer created", body["message"])
}

func TestUpdateInterviewReportsDerivationFailureAsWarning(t *testing.T) {
	id := uuid.New()
	interviews := &stubInterviews{update: func(p model.Principal, got uuid.UUID, req *service.InterviewRequest) (*service.InterviewResult, error) {
		assert.Equal(t, id, got)
		assert.True(t, req.SaleSucceeded)
		iv := &model.Interview{SaleSucceeded: true}
		iv.ID = got
		res := &service.InterviewResult{
			Interview: iv,
			Outcome:   service.OutcomeResult{Status: service.OutcomeFailed, Reason: service.ReasonStoreError},
		}
		return res, errors.Mark(errors.New("insert failed"), service.ErrSaleDerivationFailed)
	}}
	app := newTestApp(Handlers{Interview: NewInterviewHandler(interviews)})

	status, body := do(t, app, http.MethodPut, "/api/v1/interviews/"+id.String(), "user-token",
		map[string]interface{}{"operator": "Ayşe", "sale_succeeded": true})
	assert.Equal(t, 200, status)
	assert.Equal(t, service.ErrSaleDerivationFailed.Error(), body["warning"])
	derivation, ok := body["derivation"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "failed", derivation["status"])
}

func TestUpdateInterviewForbidden(t *testing.T) {
	interviews := &stubInterviews{update: func(model.Principal, uuid.UUID, *service.InterviewRequest) (*service.InterviewResult, error) {
		return nil, service.ErrForbidden
	}}
	app := newTestApp(Handlers{Interview: NewInterviewHandler(interviews)})

	status, _ := do(t, app, http.MethodPut, "/api/v1/interviews/"+uuid.NewString(), "user-token",
		map[string]interface{}{"operator": "x"})
	assert.Equal(t, 403, status)
}

func TestGetSaleNotFound(t *testing.T) {
	sales := &stubSales{get: func(uuid.UUID) (*service.SaleView, error) {
		return nil, service.ErrSaleNotFound
	}}
	app := newTestApp(Handlers{Sale: NewSaleHandler(sales)})

	status, body := do(t, app, http.MethodGet, "/api/v1/sales/"+uuid.NewString(), "user-token", nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "sale not found", body["error"])
}

func TestGetSalesRejectsBadQuery(t *testing.T) {
	app := newTestApp(Handlers{})

	for _, q := range []string{"status=lost", "platform=ebay", "from=yesterday", "min_total=abc", "customer_id=42"} {
		status, _ := do(t, app, http.MethodGet, "/api/v1/sales?"+q, "user-token", nil)
		assert.Equal(t, 400, status, q)
	}
}

func TestUsersAreAdminOnly(t *testing.T) {
	app := newTestApp(Handlers{})
	status, _ := do(t, app, http.MethodGet, "/api/v1/users", "user-token", nil)
	assert.Equal(t, 403, status)
}

func TestGetInterviewsParsesFilters(t *testing.T) {
	interviews := &stubInterviews{}
	app := newTestApp(Handlers{Interview: NewInterviewHandler(interviews)})
	customerID := uuid.New()

	status, _ := do(t, app, http.MethodGet, "/api/v1/interviews?customer_id="+customerID.String()+
		"&status=failed&operator=Ay%C5%9Fe&from=2024-05-01&to=2024-05-31&search=lazer", "user-token", nil)
	require.Equal(t, 200, status)
	require.Len(t, interviews.filters, 1)

	got := interviews.filters[0]
	assert.Equal(t, &customerID, got.CustomerID)
	assert.Equal(t, repository.InterviewStatusFailed, got.Status)
	assert.Equal(t, "Ayşe", got.Operator)
	assert.Equal(t, "lazer", got.Search)
	require.NotNil(t, got.From)
	require.NotNil(t, got.To)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *got.From)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), *got.To)

	status, _ = do(t, app, http.MethodGet, "/api/v1/interviews?status=maybe", "user-token", nil)
	assert.Equal(t, 400, status)
	status, _ = do(t, app, http.MethodGet, "/api/v1/interviews?from=yesterday", "user-token", nil)
	assert.Equal(t, 400, status)
	assert.Len(t, interviews.filters, 1)
}

func TestGetInterviewOperatorsIsNotAnID(t *testing.T) {
	app := newTestApp(Handlers{})

	resp, err := app.Test(authed(http.MethodGet, "/api/v1/interviews/operators"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var operators []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&operators))
	assert.Equal(t, []string{"Ayşe Yılmaz"}, operators)
}

func TestGetSalesPassesSearch(t *testing.T) {
	sales := &stubSales{}
	app := newTestApp(Handlers{Sale: NewSaleHandler(sales)})

	status, _ := do(t, app, http.MethodGet, "/api/v1/sales?search=%20Serum%20&status=active", "user-token", nil)
	require.Equal(t, 200, status)
	require.Len(t, sales.queries, 1)
	assert.Equal(t, " Serum ", sales.queries[0].Search)
	assert.Equal(t, repository.SaleStatusActive, sales.queries[0].Status)
}

func authed(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer user-token")
	return req
}
