package ports

import (
	"context"

	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OutboxMessage is a stored event waiting to be published.
type OutboxMessage struct {
	ID    uuid.UUID
	Event order.DomainEvent
}

// OutboxRepository stores pending events in the same transaction as the aggregate that raised
// them, so a committed order never loses its events.
type OutboxRepository interface {
	// Append stores events for later publication.
	Append(ctx context.Context, events ...order.DomainEvent) error

	// GetUnpublished returns at most limit messages, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished flags a message so GetUnpublished no longer returns it.
	MarkPublished(ctx context.Context, id uuid.UUID) error
}
