package events

import (
	"context"
	"encoding/json"
	"time"

	"go-sales-crm/internal/metrics"

	"github.com/gofiber/fiber/v2/log"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher queues events on a buffered inbox and writes them from a
// single goroutine, keyed by entity ID so one entity's events stay ordered.
type KafkaPublisher struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
}

func NewKafkaPublisher(brokers []string, topic string, buf int) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

// Start runs the writer loop until Close is called.
func (p *KafkaPublisher) Start() {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			if err := p.w.WriteMessages(context.Background(), m); err != nil {
				log.Errorf("events: kafka write %s: %v", m.Key, err)
			}
		}
		if err := p.w.Close(); err != nil {
			log.Warnf("events: kafka close: %v", err)
		}
	}()
}

// Publish enqueues ev. When the inbox is full the event is dropped and logged
// rather than blocking the request.
func (p *KafkaPublisher) Publish(ev Event) {
	value, err := json.Marshal(ev)
	if err != nil {
		log.Errorf("events: marshal %s/%s: %v", ev.Type, ev.Action, err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(ev.EntityID.String()),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(ev.Type)},
			{Key: "x-event-action", Value: []byte(ev.Action)},
		},
	}
	select {
	case p.inbox <- msg:
		metrics.EventsPublished.WithLabelValues("kafka", ev.Type).Inc()
	default:
		log.Warnf("events: kafka inbox full, dropping %s/%s for %s", ev.Type, ev.Action, ev.EntityID)
	}
}

// Close flushes queued messages and waits for the writer to finish.
func (p *KafkaPublisher) Close() {
	close(p.inbox)
	<-p.closeCh
}
