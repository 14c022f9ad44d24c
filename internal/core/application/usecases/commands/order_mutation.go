package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// mutateOrder loads the order inside a unit of work, applies mutate and persists the result
// together with the events it raised. Events are cleared only after a successful commit.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.OrderID,
	mutate func(o *order.Order) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err = mutate(aggregate); err != nil {
		return err
	}

	return persist(ctx, uow, aggregate)
}

func persist(ctx context.Context, uow OrderUoW, aggregate *order.Order) error {
	if err := uow.OrderRepository().Save(ctx, aggregate); err != nil {
		return err
	}

	if events := aggregate.PendingEvents(); len(events) > 0 {
		if err := uow.OutboxRepository().Append(ctx, events...); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	aggregate.ClearEvents()
	return nil
}
