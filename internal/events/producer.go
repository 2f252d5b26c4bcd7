// Package events publishes order lifecycle events to Kafka. Publishing is
// best-effort: a broker outage must never fail the originating request.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	OrderCancelled     = "order.cancelled"
	OrderDeleted       = "order.deleted"
)

type OrderEvent struct {
	Type    string    `json:"type"`
	OrderID string    `json:"order_id"`
	UserID  string    `json:"user_id"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

type Producer struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewProducer returns a producer wired to broker, or a disabled one when
// broker is empty.
func NewProducer(broker, topic string, log *slog.Logger) *Producer {
	if broker == "" {
		return &Producer{log: log}
	}
	w := &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: w, log: log}
}

// Publish emits an order event keyed by order id. Errors are logged, not
// returned.
func (p *Producer) Publish(ctx context.Context, ev OrderEvent) {
	if p == nil || p.writer == nil {
		return
	}
	ev.At = time.Now().UTC()
	payload, _ := json.Marshal(ev)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: payload,
	})
	if err != nil {
		p.log.Error("publish order event", "type", ev.Type, "order_id", ev.OrderID, "err", err)
	}
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
