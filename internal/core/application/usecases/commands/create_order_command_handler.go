package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// CreateOrderCommandHandler opens a new Pending order and stores it with its OrderCreated event.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the order, adds the lines in command order and persists it in one transaction.
// A currency mismatch between lines fails the whole command and nothing is stored.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.OrderID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderID{}, err
	}

	aggregate, err := order.NewOrder(kernel.NewOrderID(), cmd.CustomerID())
	if err != nil {
		return kernel.OrderID{}, err
	}

	for _, line := range cmd.Lines() {
		if err = aggregate.AddLine(line); err != nil {
			return kernel.OrderID{}, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.OrderID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = persist(ctx, uow, aggregate); err != nil {
		return kernel.OrderID{}, err
	}

	return aggregate.ID(), nil
}
