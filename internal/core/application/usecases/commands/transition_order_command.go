package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order forward along its lifecycle with confirm, ship or
// deliver. Cancellation has its own command because it carries a reason.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	operation order.Operation

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID string, operation order.Operation) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOperation(operation),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c TransitionOrderCommand) Operation() order.Operation {
	return c.operation
}

func (c *TransitionOrderCommand) setOrderID(orderID string) error {
	id, err := kernel.OrderIDFromString(orderID)
	if err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setOperation(operation order.Operation) error {
	switch operation {
	case order.OperationConfirm, order.OperationShip, order.OperationDeliver:
		c.operation = operation
		return nil
	default:
		return errs.NewValueIsInvalidError("operation")
	}
}
