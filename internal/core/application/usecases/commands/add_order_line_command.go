package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrAddOrderLineCommandIsNotConstructed = errors.New(
	"AddOrderLineCommand must be created via NewAddOrderLineCommand constructor",
)

// AddOrderLineCommand appends one line to a Pending order.
type AddOrderLineCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	line    order.OrderLine

	guard guard.ConstructorGuard
}

func NewAddOrderLineCommand(orderID string, item LineItem) (AddOrderLineCommand, error) {
	cmd := AddOrderLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLine(item),
	); err != nil {
		return AddOrderLineCommand{}, err
	}

	return cmd, nil
}

func (c AddOrderLineCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderLineCommandIsNotConstructed)
}

func (c AddOrderLineCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c AddOrderLineCommand) Line() order.OrderLine {
	return c.line
}

func (c *AddOrderLineCommand) setOrderID(orderID string) error {
	id, err := kernel.OrderIDFromString(orderID)
	if err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *AddOrderLineCommand) setLine(item LineItem) error {
	line, err := item.toOrderLine()
	if err != nil {
		return err
	}

	c.line = line
	return nil
}
