package service

import (
	"go-sales-crm/internal/model"
	"go-sales-crm/internal/workset"

	"github.com/google/uuid"
)

// OutcomeStatus tells the caller what saving an interview did to sales.
type OutcomeStatus string

const (
	OutcomeCreated OutcomeStatus = "created"
	OutcomeNone    OutcomeStatus = "none"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Reasons attached to a none/failed outcome.
const (
	ReasonNoTransition = "no_transition"
	ReasonNoProducts   = "no_products"
	ReasonStoreError   = "store_error"
)

type OutcomeResult struct {
	Status OutcomeStatus `json:"status"`
	SaleID *uuid.UUID    `json:"sale_id,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

// Decision is the pure half of the outcome rule.
type Decision struct {
	Derive  bool
	Product model.Product
	Reason  string
}

// DecideOutcome derives a sale only when the interview goes from not
// succeeded to succeeded and at least one product was discussed. The first
// discussed product, in insertion order, seeds the sale.
func DecideOutcome(previous, next bool, discussed *workset.DiscussedProducts) Decision {
	if previous || !next {
		return Decision{Reason: ReasonNoTransition}
	}
	if discussed == nil {
		return Decision{Reason: ReasonNoProducts}
	}
	first, ok := discussed.First()
	if !ok {
		return Decision{Reason: ReasonNoProducts}
	}
	return Decision{Derive: true, Product: first}
}
