package memory

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
)

// OutboxRepository implements ports.OutboxRepository. Messages appended inside a transaction
// become visible on Commit.
type OutboxRepository struct {
	store *Store
	tx    *changeSet
}

func NewOutboxRepository(store *Store) *OutboxRepository {
	return &OutboxRepository{store: store}
}

func (r *OutboxRepository) Append(_ context.Context, events ...order.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	if r.tx != nil {
		r.tx.appended = append(r.tx.appended, events...)
		return nil
	}

	r.store.mu.Lock()
	r.store.appendLocked(events)
	r.store.mu.Unlock()
	return nil
}

func (r *OutboxRepository) GetUnpublished(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return r.store.unpublished(limit), nil
}

func (r *OutboxRepository) MarkPublished(_ context.Context, id uuid.UUID) error {
	if !r.store.hasMessage(id) {
		return errs.NewObjectNotFoundError("outboxMessageId", id)
	}

	if r.tx != nil {
		r.tx.published = append(r.tx.published, id)
		return nil
	}

	r.store.mu.Lock()
	r.store.markPublishedLocked(id)
	r.store.mu.Unlock()
	return nil
}
