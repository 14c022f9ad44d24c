package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// AddOrderLineCommandHandler appends a line to a stored order.
// Fails with errs.ErrObjectNotFound for an unknown order and errs.ErrTransitionIsInvalid once the
// order has left Pending.
type AddOrderLineCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddOrderLineCommandHandler(uowFactory OrderUoWFactory) AddOrderLineCommandHandler {
	return AddOrderLineCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AddOrderLineCommandHandler) Handle(ctx context.Context, cmd AddOrderLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.AddLine(cmd.Line())
	})
}
