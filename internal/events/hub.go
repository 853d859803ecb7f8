package events

import (
	"encoding/json"

	"go-sales-crm/internal/metrics"
	"go-sales-crm/internal/ws"

	"github.com/gofiber/fiber/v2/log"
)

// HubPublisher broadcasts events as JSON text frames to every WebSocket client.
type HubPublisher struct {
	hub *ws.Hub
}

func NewHubPublisher(hub *ws.Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) Publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Errorf("events: marshal %s/%s: %v", ev.Type, ev.Action, err)
		return
	}
	metrics.EventsPublished.WithLabelValues("ws", ev.Type).Inc()
	go func() {
		select {
		case p.hub.Broadcast <- msg:
		case <-p.hub.Done():
		}
	}()
}
