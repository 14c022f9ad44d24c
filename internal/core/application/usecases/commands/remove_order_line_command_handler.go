package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// RemoveOrderLineCommandHandler removes a product line from a stored order.
// A product the order does not contain is reported as errs.ErrObjectNotFound with the
// productId parameter name; a non-Pending order reports the transition error first.
type RemoveOrderLineCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRemoveOrderLineCommandHandler(uowFactory OrderUoWFactory) RemoveOrderLineCommandHandler {
	return RemoveOrderLineCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RemoveOrderLineCommandHandler) Handle(ctx context.Context, cmd RemoveOrderLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		line, ok := o.Line(cmd.ProductID())
		if !ok && o.Status().IsModifiable() {
			return errs.NewObjectNotFoundError("productId", cmd.ProductID().String())
		}
		return o.RemoveLine(line)
	})
}
