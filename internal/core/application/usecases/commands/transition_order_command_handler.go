package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies confirm, ship or deliver to a stored order.
//
// Example:
//
//	cmd, _ := NewTransitionOrderCommand(orderID, order.OperationConfirm)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order
//	case errors.Is(err, order.ErrOrderIsEmpty):
//	    // nothing to confirm
//	case errors.Is(err, errs.ErrTransitionIsInvalid):
//	    // wrong status
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		switch cmd.Operation() {
		case order.OperationConfirm:
			return o.Confirm()
		case order.OperationShip:
			return o.Ship()
		default:
			return o.Deliver()
		}
	})
}
