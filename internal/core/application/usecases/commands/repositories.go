// Package commands contains business operations that modify order state.
// Every handler follows the same sequence: validate the command, begin a unit of work, load and
// mutate the aggregate, save it, append its pending events to the outbox, commit, clear the events.
package commands

import (
	"context"

	"orders/internal/core/ports"
)

// Unit of Work interfaces used by the command handlers.
type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the current transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OutboxRepoFactory provides the outbox repository bound to the current transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW writes orders and their events atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.OrderRepository().Save(ctx, o)
	//   err = uow.OutboxRepository().Append(ctx, o.PendingEvents()...)
	//
	//   err = uow.Commit(ctx)
	//   o.ClearEvents()
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW reads and marks outbox messages.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
