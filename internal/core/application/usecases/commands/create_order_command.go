package commands

import (
	"errors"
	"fmt"
	"slices"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to open a new order for a customer with an initial
// set of lines. An empty item list creates an empty Pending order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("c1", []LineItem{
//	    {ProductID: "p1", ProductName: "Widget", Quantity: 2, UnitPrice: "10.00"},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.CustomerID
	lines      []order.OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand parses the customer and every item. Item errors are prefixed with the
// item position.
func NewCreateOrderCommand(customerID string, items []LineItem) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setLines(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

// Lines returns a copy of the parsed lines in input order.
func (c CreateOrderCommand) Lines() []order.OrderLine {
	return slices.Clone(c.lines)
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	id, err := kernel.CustomerIDFromString(customerID)
	if err != nil {
		return err
	}

	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setLines(items []LineItem) error {
	lines := make([]order.OrderLine, 0, len(items))
	var itemErrs []error
	for i, item := range items {
		line, err := item.toOrderLine()
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		lines = append(lines, line)
	}

	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	c.lines = lines
	return nil
}
