package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"rezdyLink/internal/modules/bookings/domain"
)

// Publisher writes booking lifecycle events to a Kafka topic. It is optional
// infrastructure: a nil Publisher drops events silently, and delivery
// failures are logged, never surfaced to the booking operation.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a Publisher, or nil when no brokers are configured.
func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			WriteTimeout: 5 * time.Second,
		},
	}
}

// PublishBookingEvent delivers one event, keyed by order number so all
// events for an order land on the same partition.
func (p *Publisher) PublishBookingEvent(ctx context.Context, event domain.Event) {
	if p == nil || p.writer == nil {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		slog.Error("booking event marshal failed", slog.Any("error", err))
		return
	}
	message := kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: value,
		Time:  event.At,
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		slog.Warn("booking event publish failed",
			slog.String("eventId", event.ID),
			slog.String("action", event.Action),
			slog.Any("error", err))
		return
	}
	slog.Debug("booking event published", slog.String("eventId", event.ID), slog.String("action", event.Action))
}

// Close flushes and releases the underlying writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
