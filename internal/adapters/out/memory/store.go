// Package memory keeps orders and outbox messages in process memory.
//
// It backs the service when no database is configured and serves as a realistic fixture in
// adapter tests. A UnitOfWork buffers its writes and applies them to the Store on Commit, so a
// rolled back unit leaves no trace.
package memory

import (
	"slices"
	"sync"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
)

// Store is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
	outbox []outboxEntry
}

type outboxEntry struct {
	message   ports.OutboxMessage
	published bool
}

func NewStore() *Store {
	return &Store{orders: make(map[string]*order.Order)}
}

// changeSet holds the writes of one open transaction.
type changeSet struct {
	saved     map[string]*order.Order
	deleted   map[string]struct{}
	appended  []order.DomainEvent
	published []uuid.UUID
}

func newChangeSet() *changeSet {
	return &changeSet{
		saved:   make(map[string]*order.Order),
		deleted: make(map[string]struct{}),
	}
}

// view returns the committed orders overlaid with cs. cs may be nil.
func (s *Store) view(cs *changeSet) map[string]*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make(map[string]*order.Order, len(s.orders))
	for id, o := range s.orders {
		orders[id] = o
	}
	if cs == nil {
		return orders
	}

	for id := range cs.deleted {
		delete(orders, id)
	}
	for id, o := range cs.saved {
		orders[id] = o
	}
	return orders
}

func (s *Store) apply(cs *changeSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range cs.deleted {
		delete(s.orders, id)
	}
	for id, o := range cs.saved {
		s.orders[id] = o
	}
	s.appendLocked(cs.appended)
	for _, id := range cs.published {
		s.markPublishedLocked(id)
	}
}

func (s *Store) appendLocked(events []order.DomainEvent) {
	for _, event := range events {
		s.outbox = append(s.outbox, outboxEntry{
			message: ports.OutboxMessage{ID: uuid.New(), Event: event},
		})
	}
}

func (s *Store) markPublishedLocked(id uuid.UUID) bool {
	for i := range s.outbox {
		if s.outbox[i].message.ID == id {
			s.outbox[i].published = true
			return true
		}
	}
	return false
}

func (s *Store) unpublished(limit int) []ports.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]ports.OutboxMessage, 0, limit)
	for _, entry := range s.outbox {
		if len(messages) == limit {
			break
		}
		if !entry.published {
			messages = append(messages, entry.message)
		}
	}
	return messages
}

func (s *Store) hasMessage(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.ContainsFunc(s.outbox, func(e outboxEntry) bool { return e.message.ID == id })
}

// sortOldestFirst orders by creation time, then id.
func sortOldestFirst(orders []*order.Order) {
	slices.SortFunc(orders, func(a, b *order.Order) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		switch {
		case a.ID().String() < b.ID().String():
			return -1
		case a.ID().String() > b.ID().String():
			return 1
		}
		return 0
	})
}

// clone copies the aggregate so callers never share state with the store.
// Pending events are dropped, as they would be by a database round trip.
func clone(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(o.ID(), o.CustomerID(), o.Status(), o.Lines(), o.CreatedAt(), o.UpdatedAt())
}
