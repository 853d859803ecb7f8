package service

import (
	"fmt"
	"strings"
	"time"

	"go-sales-crm/internal/events"
	"go-sales-crm/internal/metrics"
	"go-sales-crm/internal/model"
	"go-sales-crm/internal/repository"
	"go-sales-crm/internal/workset"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InterviewService interface {
	ListInterviews(filter repository.InterviewFilter) ([]model.Interview, error)
	// ListOperators returns the operator names seen on interviews, for filtering.
	ListOperators() ([]string, error)
	GetInterview(id uuid.UUID) (*model.Interview, error)
	CreateInterview(p model.Principal, req *InterviewRequest) (*InterviewResult, error)
	UpdateInterview(p model.Principal, id uuid.UUID, req *InterviewRequest) (*InterviewResult, error)
	DeleteInterview(p model.Principal, id uuid.UUID) error
	// ApplyOutcome runs the interview outcome rule against an interview that
	// is already persisted.
	ApplyOutcome(p model.Principal, previous, next bool, interview *model.Interview, discussed *workset.DiscussedProducts) (OutcomeResult, error)
}

type InterviewRequest struct {
	CustomerID          uuid.UUID   `json:"customer_id"`
	Operator            string      `json:"operator"`
	Notes               *string     `json:"notes"`
	SaleSucceeded       bool        `json:"sale_succeeded"`
	InterviewDate       *time.Time  `json:"interview_date"`
	DiscussedProductIDs []uuid.UUID `json:"discussed_product_ids"`
}

// InterviewResult carries the saved interview and what happened to sales.
type InterviewResult struct {
	Interview *model.Interview `json:"interview"`
	Outcome   OutcomeResult    `json:"derivation"`
}

type interviewService struct {
	interviewRepo repository.InterviewRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	saleRepo      repository.SaleRepository
	publisher     events.Publisher
	now           func() time.Time
}

func NewInterviewService(iRepo repository.InterviewRepository, cRepo repository.CustomerRepository, pRepo repository.ProductRepository, sRepo repository.SaleRepository, pub events.Publisher) InterviewService {
	return &interviewService{
		interviewRepo: iRepo,
		customerRepo:  cRepo,
		productRepo:   pRepo,
		saleRepo:      sRepo,
		publisher:     pub,
		now:           time.Now,
	}
}

// canEdit: admins, or the staff member named as the interview's operator.
func canEdit(p model.Principal, interview *model.Interview) bool {
	if p.IsAdmin() {
		return true
	}
	return interview.Operator != "" && (interview.Operator == p.FullName || interview.Operator == p.Email)
}

func (s *interviewService) ListInterviews(filter repository.InterviewFilter) ([]model.Interview, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, invalid("from must not be after to")
	}
	filter.Operator = strings.TrimSpace(filter.Operator)
	filter.Search = strings.TrimSpace(filter.Search)

	interviews, err := s.interviewRepo.FindAll(filter)
	if err != nil {
		return nil, errors.Wrap(err, "list interviews")
	}
	return interviews, nil
}

func (s *interviewService) ListOperators() ([]string, error) {
	operators, err := s.interviewRepo.Operators()
	if err != nil {
		return nil, errors.Wrap(err, "list operators")
	}
	return operators, nil
}

func (s *interviewService) GetInterview(id uuid.UUID) (*model.Interview, error) {
	interview, err := s.interviewRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, ErrInterviewNotFound, "get interview")
	}
	return interview, nil
}

// loadDiscussed rebuilds the discussed-products working set from the ordered
// IDs in a request. Unknown products fail validation before anything is written.
func (s *interviewService) loadDiscussed(ids []uuid.UUID) (*workset.DiscussedProducts, error) {
	discussed := workset.NewDiscussedProducts()
	if len(ids) == 0 {
		return discussed, nil
	}
	found, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, errors.Wrap(err, "load discussed products")
	}
	for _, id := range ids {
		p, ok := found[id]
		if !ok {
			return nil, invalid("product %s not found", id)
		}
		discussed.Add(p)
	}
	return discussed, nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *interviewService) CreateInterview(p model.Principal, req *InterviewRequest) (*InterviewResult, error) {
	// 1. Validate input
	if req.CustomerID == uuid.Nil {
		return nil, invalid("customer_id is required")
	}
	operator := strings.TrimSpace(req.Operator)
	if operator == "" {
		operator = p.FullName
	}
	if operator == "" {
		operator = p.Email
	}

	discussed, err := s.loadDiscussed(req.DiscussedProductIDs)
	if err != nil {
		return nil, err
	}

	if _, err := s.customerRepo.FindByID(req.CustomerID); err != nil {
		return nil, storeErr(err, ErrCustomerNotFound, "load customer")
	}

	// 2. Save interview
	interview := &model.Interview{
		CustomerID:    req.CustomerID,
		Operator:      operator,
		Notes:         normalizeNotes(req.Notes),
		SaleSucceeded: req.SaleSucceeded,
		InterviewDate: s.now(),
		ProductID:     discussed.FirstID(),
	}
	if req.InterviewDate != nil && !req.InterviewDate.IsZero() {
		interview.InterviewDate = *req.InterviewDate
	}
	interview.Stamp(p.Actor())

	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, errors.Wrap(err, "create interview")
	}

	s.publisher.Publish(events.New(events.TypeInterview, events.ActionCreated, interview.ID, actorOf(p),
		fmt.Sprintf("%s recorded an interview", p.FullName), interview))

	// 3. A new interview starts from not succeeded
	outcome, err := s.ApplyOutcome(p, false, interview.SaleSucceeded, interview, discussed)
	return &InterviewResult{Interview: interview, Outcome: outcome}, err
}

func (s *interviewService) UpdateInterview(p model.Principal, id uuid.UUID, req *InterviewRequest) (*InterviewResult, error) {
	operator := strings.TrimSpace(req.Operator)
	if operator == "" {
		return nil, invalid("operator is required")
	}

	discussed, err := s.loadDiscussed(req.DiscussedProductIDs)
	if err != nil {
		return nil, err
	}

	// The previous flag is read from the locked row, not from the client, so
	// concurrent saves cannot both see the false -> true transition.
	var previous bool
	updated, err := s.interviewRepo.UpdateLocked(id, func(current *model.Interview) error {
		if !canEdit(p, current) {
			return ErrForbidden
		}
		previous = current.SaleSucceeded

		current.Operator = operator
		current.Notes = normalizeNotes(req.Notes)
		current.SaleSucceeded = req.SaleSucceeded
		current.ProductID = discussed.FirstID()
		if req.InterviewDate != nil && !req.InterviewDate.IsZero() {
			current.InterviewDate = *req.InterviewDate
		}
		current.UpdatedBy = p.Actor()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			return nil, ErrForbidden
		}
		return nil, storeErr(err, ErrInterviewNotFound, "update interview")
	}

	s.publisher.Publish(events.New(events.TypeInterview, events.ActionUpdated, updated.ID, actorOf(p),
		fmt.Sprintf("%s updated an interview", p.FullName), updated))

	outcome, err := s.ApplyOutcome(p, previous, req.SaleSucceeded, updated, discussed)
	return &InterviewResult{Interview: updated, Outcome: outcome}, err
}

func (s *interviewService) ApplyOutcome(p model.Principal, previous, next bool, interview *model.Interview, discussed *workset.DiscussedProducts) (OutcomeResult, error) {
	decision := DecideOutcome(previous, next, discussed)
	if !decision.Derive {
		metrics.SaleDerivations.WithLabelValues(string(OutcomeNone)).Inc()
		return OutcomeResult{Status: OutcomeNone, Reason: decision.Reason}, nil
	}

	interviewID := interview.ID
	sale := &model.Sale{
		CustomerID:   interview.CustomerID,
		InterviewID:  &interviewID,
		SaleDate:     s.now(),
		Platform:     model.PlatformPhone,
		ShippingCost: decimal.Zero,
		PayMethod:    nil,
		IsCanceled:   false,
	}
	sale.Stamp(p.Actor())
	items := []model.SaleItem{{
		ProductID: decision.Product.ID,
		Quantity:  1,
		UnitPrice: decision.Product.Price,
	}}

	if err := s.saleRepo.CreateWithItems(sale, items); err != nil {
		metrics.SaleDerivations.WithLabelValues(string(OutcomeFailed)).Inc()
		log.Errorf("interview %s: sale derivation failed: %v", interview.ID, err)
		return OutcomeResult{Status: OutcomeFailed, Reason: ReasonStoreError},
			errors.Mark(errors.Wrapf(err, "derive sale from interview %s", interview.ID), ErrSaleDerivationFailed)
	}

	metrics.SaleDerivations.WithLabelValues(string(OutcomeCreated)).Inc()
	log.Infof("interview %s: derived sale %s from product %s", interview.ID, sale.ID, decision.Product.ID)

	s.publisher.Publish(events.New(events.TypeSale, events.ActionDerived, sale.ID, actorOf(p),
		fmt.Sprintf("A sale record has been automatically created for a successful interview by %s", interview.Operator), sale))

	saleID := sale.ID
	return OutcomeResult{Status: OutcomeCreated, SaleID: &saleID}, nil
}

func (s *interviewService) DeleteInterview(p model.Principal, id uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if err := s.interviewRepo.Delete(id); err != nil {
		return storeErr(err, ErrInterviewNotFound, "delete interview")
	}
	s.publisher.Publish(events.New(events.TypeInterview, events.ActionDeleted, id, actorOf(p),
		fmt.Sprintf("%s deleted an interview", p.FullName), nil))
	return nil
}
