package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// EventPublisher is the event sink. Delivery is at-least-once: consumers deduplicate by
// DomainEvent.EventID.
type EventPublisher interface {
	// Publish sends the event to the sink's default destination.
	Publish(ctx context.Context, event order.DomainEvent) error

	// PublishTo sends the event to an explicit destination (a topic, for instance).
	PublishTo(ctx context.Context, event order.DomainEvent, destination string) error
}
