// Package eventlog is the event sink used when no broker is configured: every event becomes a
// structured log line.
package eventlog

import (
	"context"
	"log/slog"

	"orders/internal/core/domain/model/order"
)

const defaultDestination = "log"

// Publisher implements ports.EventPublisher by logging. It never fails.
type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "event_log")}
}

func (p *Publisher) Publish(ctx context.Context, event order.DomainEvent) error {
	return p.PublishTo(ctx, event, defaultDestination)
}

func (p *Publisher) PublishTo(ctx context.Context, event order.DomainEvent, destination string) error {
	attrs := []any{
		"destination", destination,
		"event_id", event.EventID().String(),
		"event_type", string(event.EventType()),
		"routing_key", event.EventType().RoutingKey(),
		"order_id", event.OrderID().String(),
		"occurred_at", event.OccurredAt(),
	}

	switch e := event.(type) {
	case order.OrderCreated:
		attrs = append(attrs, "customer_id", e.CustomerID().String())
	case order.OrderCancelled:
		attrs = append(attrs, "reason", e.Reason())
	case order.OrderStatusChanged:
		attrs = append(attrs, "previous_status", e.PreviousStatus().String(), "new_status", e.NewStatus().String())
	}

	p.logger.InfoContext(ctx, "domain event", attrs...)
	return nil
}
