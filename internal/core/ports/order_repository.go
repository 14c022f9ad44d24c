// Package ports defines the contracts between the order core and its adapters:
// persistence, event publication and request idempotency.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Save inserts the order or replaces the stored copy, lines included.
	// Pending events are not persisted by Save.
	Save(ctx context.Context, aggregate *order.Order) error

	// FindByID returns an errs.ObjectNotFoundError when no order has that id.
	FindByID(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// FindByCustomerID returns the customer's orders, oldest first. No match is an empty slice.
	FindByCustomerID(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error)

	// FindAll returns every order, oldest first.
	FindAll(ctx context.Context) ([]*order.Order, error)

	// DeleteByID removes the order and its lines. Deleting a missing order is not an error.
	DeleteByID(ctx context.Context, id kernel.OrderID) error

	ExistsByID(ctx context.Context, id kernel.OrderID) (bool, error)
}
