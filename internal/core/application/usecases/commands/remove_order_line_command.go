package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrRemoveOrderLineCommandIsNotConstructed = errors.New(
	"RemoveOrderLineCommand must be created via NewRemoveOrderLineCommand constructor",
)

// RemoveOrderLineCommand removes the first line for a product from a Pending order.
type RemoveOrderLineCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	productID kernel.ProductID

	guard guard.ConstructorGuard
}

func NewRemoveOrderLineCommand(orderID, productID string) (RemoveOrderLineCommand, error) {
	cmd := RemoveOrderLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	oid, orderErr := kernel.OrderIDFromString(orderID)
	pid, productErr := kernel.ProductIDFromString(productID)
	if err := errors.Join(orderErr, productErr); err != nil {
		return RemoveOrderLineCommand{}, err
	}

	cmd.orderID = oid
	cmd.productID = pid
	return cmd, nil
}

func (c RemoveOrderLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderLineCommandIsNotConstructed)
}

func (c RemoveOrderLineCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c RemoveOrderLineCommand) ProductID() kernel.ProductID {
	return c.productID
}
