package service

import (
	"fmt"
	"strings"
	"time"

	"go-sales-crm/internal/events"
	"go-sales-crm/internal/metrics"
	"go-sales-crm/internal/model"
	"go-sales-crm/internal/pricing"
	"go-sales-crm/internal/repository"
	"go-sales-crm/internal/workset"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	ListSales(query SaleQuery) ([]SaleView, error)
	GetSale(id uuid.UUID) (*SaleView, error)
	CreateSale(p model.Principal, req *SaleRequest) (*SaleView, error)
	UpdateSale(p model.Principal, id uuid.UUID, req *SaleRequest) (*SaleView, error)
	DeleteSale(p model.Principal, id uuid.UUID) error
	// Quote prices an unsaved item list the same way a saved sale is priced.
	Quote(req *QuoteRequest) (*QuoteResult, error)
}

type SaleItemRequest struct {
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type SaleRequest struct {
	CustomerID   uuid.UUID         `json:"customer_id"`
	InterviewID  *uuid.UUID        `json:"interview_id"`
	SaleDate     *time.Time        `json:"sale_date"`
	Platform     model.Platform    `json:"platform"`
	ShippingCost decimal.Decimal   `json:"shipping_cost"`
	PayMethod    *string           `json:"pay_method"`
	IsCanceled   bool              `json:"is_canceled"`
	Items        []SaleItemRequest `json:"items"`
}

type QuoteRequest struct {
	ShippingCost decimal.Decimal   `json:"shipping_cost"`
	Items        []SaleItemRequest `json:"items"`
}

type QuoteLine struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	DisplayPrice decimal.Decimal `json:"display_price"`
}

type QuoteResult struct {
	Lines        []QuoteLine     `json:"lines"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
}

// SaleQuery is a SaleFilter plus bounds on the computed total.
type SaleQuery struct {
	repository.SaleFilter
	MinTotal *decimal.Decimal
	MaxTotal *decimal.Decimal
}

type saleService struct {
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	interviewRepo repository.InterviewRepository
	normalizer    pricing.Normalizer
	publisher     events.Publisher
	now           func() time.Time
}

func NewSaleService(sRepo repository.SaleRepository, pRepo repository.ProductRepository, iRepo repository.InterviewRepository, n pricing.Normalizer, pub events.Publisher) SaleService {
	return &saleService{
		saleRepo:      sRepo,
		productRepo:   pRepo,
		interviewRepo: iRepo,
		normalizer:    n,
		publisher:     pub,
		now:           time.Now,
	}
}

func (s *saleService) ListSales(query SaleQuery) ([]SaleView, error) {
	query.Search = strings.TrimSpace(query.Search)
	sales, err := s.saleRepo.FindAll(query.SaleFilter)
	if err != nil {
		return nil, errors.Wrap(err, "list sales")
	}

	views := make([]SaleView, 0, len(sales))
	for _, sale := range sales {
		v := newSaleView(s.normalizer, sale)
		if query.MinTotal != nil && v.Total.LessThan(*query.MinTotal) {
			continue
		}
		if query.MaxTotal != nil && v.Total.GreaterThan(*query.MaxTotal) {
			continue
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *saleService) GetSale(id uuid.UUID) (*SaleView, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, ErrSaleNotFound, "get sale")
	}
	v := newSaleView(s.normalizer, *sale)
	return &v, nil
}

// buildItems replays the request lines through the SaleItems working set.
// Repeated products are merged by summing their quantities; a later explicit
// unit price wins. Explicit prices are rounded to the stored scale.
func (s *saleService) buildItems(lines []SaleItemRequest) (*workset.SaleItems, error) {
	items := workset.NewSaleItems()
	if len(lines) == 0 {
		return items, nil
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for i, l := range lines {
		if l.ProductID == uuid.Nil {
			return nil, invalid("items[%d]: product_id is required", i)
		}
		if l.Quantity <= 0 {
			return nil, invalid("items[%d]: quantity must be greater than zero", i)
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return nil, invalid("items[%d]: unit_price cannot be negative", i)
		}
		ids = append(ids, l.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, errors.Wrap(err, "load sale products")
	}

	for i, l := range lines {
		product, ok := products[l.ProductID]
		if !ok {
			return nil, invalid("items[%d]: product %s not found", i, l.ProductID)
		}
		if existing, ok := items.Get(l.ProductID); ok {
			items.SetQuantity(l.ProductID, existing.Quantity+l.Quantity)
		} else {
			items.Add(product)
			items.SetQuantity(l.ProductID, l.Quantity)
		}
		if l.UnitPrice != nil {
			items.SetUnitPrice(l.ProductID, pricing.Round(*l.UnitPrice))
		}
	}
	return items, nil
}

// prepare validates a sale request and builds the header and item set.
func (s *saleService) prepare(req *SaleRequest) (*model.Sale, *workset.SaleItems, error) {
	if req.CustomerID == uuid.Nil {
		return nil, nil, invalid("customer_id is required")
	}
	if req.Platform == "" {
		req.Platform = model.PlatformPhone
	}
	if !req.Platform.Valid() {
		return nil, nil, invalid("unknown platform %q", req.Platform)
	}
	if req.ShippingCost.IsNegative() {
		return nil, nil, invalid("shipping_cost cannot be negative")
	}
	if len(req.Items) == 0 {
		return nil, nil, invalid("at least one sale item is required")
	}

	items, err := s.buildItems(req.Items)
	if err != nil {
		return nil, nil, err
	}

	var interviewID *uuid.UUID
	if req.InterviewID != nil && *req.InterviewID != uuid.Nil {
		if err := s.checkInterview(*req.InterviewID, req.CustomerID); err != nil {
			return nil, nil, err
		}
		id := *req.InterviewID
		interviewID = &id
	}

	var payMethod *string
	if req.PayMethod != nil {
		if pm := strings.TrimSpace(*req.PayMethod); pm != "" {
			payMethod = &pm
		}
	}

	sale := &model.Sale{
		CustomerID:   req.CustomerID,
		InterviewID:  interviewID,
		SaleDate:     s.now(),
		Platform:     req.Platform,
		ShippingCost: pricing.Round(req.ShippingCost),
		PayMethod:    payMethod,
		IsCanceled:   req.IsCanceled,
	}
	if req.SaleDate != nil && !req.SaleDate.IsZero() {
		sale.SaleDate = *req.SaleDate
	}
	return sale, items, nil
}

// checkInterview makes sure a linked interview exists and was held with the
// sale's customer.
func (s *saleService) checkInterview(interviewID, customerID uuid.UUID) error {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid("interview %s not found", interviewID)
	}
	if err != nil {
		return errors.Wrap(err, "load linked interview")
	}
	if interview.CustomerID != customerID {
		return invalid("interview %s belongs to another customer", interviewID)
	}
	return nil
}

// attachProducts fills item products from the working set so the view can
// price the sale without a reload.
func attachProducts(sale *model.Sale, items *workset.SaleItems) {
	for i := range sale.Items {
		if line, ok := items.Get(sale.Items[i].ProductID); ok {
			product := line.Product
			sale.Items[i].Product = &product
		}
	}
}

func (s *saleService) CreateSale(p model.Principal, req *SaleRequest) (*SaleView, error) {
	sale, items, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	sale.Stamp(p.Actor())

	if err := s.saleRepo.CreateWithItems(sale, items.ToModels(sale.ID)); err != nil {
		return nil, errors.Wrap(err, "create sale")
	}
	attachProducts(sale, items)
	metrics.SalesWritten.WithLabelValues("create").Inc()

	view := newSaleView(s.normalizer, *sale)
	log.Infof("sale %s created by %s: %d items, total %s", sale.ID, p.Actor(), items.Len(), view.TotalDisplay)
	s.publisher.Publish(events.New(events.TypeSale, events.ActionCreated, sale.ID, actorOf(p),
		fmt.Sprintf("%s recorded a sale", p.FullName), view))
	return &view, nil
}

func (s *saleService) UpdateSale(p model.Principal, id uuid.UUID, req *SaleRequest) (*SaleView, error) {
	existing, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, ErrSaleNotFound, "load sale")
	}

	sale, items, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	sale.BaseModel = existing.BaseModel
	sale.UpdatedBy = p.Actor()
	if req.SaleDate == nil || req.SaleDate.IsZero() {
		sale.SaleDate = existing.SaleDate
	}

	if err := s.saleRepo.ReplaceWithItems(sale, items.ToModels(sale.ID)); err != nil {
		return nil, storeErr(err, ErrSaleNotFound, "update sale")
	}
	attachProducts(sale, items)
	metrics.SalesWritten.WithLabelValues("update").Inc()

	view := newSaleView(s.normalizer, *sale)
	s.publisher.Publish(events.New(events.TypeSale, events.ActionUpdated, sale.ID, actorOf(p),
		fmt.Sprintf("%s updated a sale", p.FullName), view))
	return &view, nil
}

func (s *saleService) DeleteSale(p model.Principal, id uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if err := s.saleRepo.Delete(id); err != nil {
		return storeErr(err, ErrSaleNotFound, "delete sale")
	}
	metrics.SalesWritten.WithLabelValues("delete").Inc()
	s.publisher.Publish(events.New(events.TypeSale, events.ActionDeleted, id, actorOf(p),
		fmt.Sprintf("%s deleted a sale", p.FullName), nil))
	return nil
}

func (s *saleService) Quote(req *QuoteRequest) (*QuoteResult, error) {
	if req.ShippingCost.IsNegative() {
		return nil, invalid("shipping_cost cannot be negative")
	}
	items, err := s.buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	lines := items.Items()
	out := make([]QuoteLine, len(lines))
	for i, l := range lines {
		out[i] = QuoteLine{
			ProductID:    l.Product.ID,
			Name:         l.Product.Name,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			DisplayPrice: s.normalizer.Normalize(l.UnitPrice, l.Product.Category),
		}
	}

	total := s.normalizer.Total(items.PricingLines(), pricing.Round(req.ShippingCost))
	return &QuoteResult{Lines: out, Total: total, TotalDisplay: pricing.Format(total)}, nil
}
