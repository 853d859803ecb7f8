// Package events fans domain events out to connected WebSocket clients and,
// when configured, to a Kafka topic.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeCustomer  = "customer_update"
	TypeInterview = "interview_update"
	TypeSale      = "sale_update"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionDerived = "derived"
)

type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Event struct {
	ID         string      `json:"event_id"`
	Type       string      `json:"type"`
	Action     string      `json:"action"`
	EntityID   uuid.UUID   `json:"entity_id"`
	Data       interface{} `json:"data,omitempty"`
	User       Actor       `json:"user"`
	Message    string      `json:"message"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// New stamps an event with an ID and the current time.
func New(typ, action string, entityID uuid.UUID, actor Actor, message string, data interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Action:     action,
		EntityID:   entityID,
		Data:       data,
		User:       actor,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher must not block the caller for longer than a channel send.
type Publisher interface {
	Publish(ev Event)
}

// Multi publishes to every wrapped publisher in order.
type Multi []Publisher

func (m Multi) Publish(ev Event) {
	for _, p := range m {
		p.Publish(ev)
	}
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(Event) {}
