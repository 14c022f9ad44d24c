package order

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrOrderLineIsNotConstructed = errors.New("OrderLine must be created via NewOrderLine")

// OrderLine is an immutable line item. Two lines are equal when they refer to the same product;
// changing a line means removing it and adding a new one.
type OrderLine struct {
	productID   kernel.ProductID
	productName string
	quantity    kernel.Quantity
	unitPrice   kernel.Money

	guard guard.ConstructorGuard
}

// NewOrderLine validates every argument except productName, which may be empty.
func NewOrderLine(
	productID kernel.ProductID,
	productName string,
	quantity kernel.Quantity,
	unitPrice kernel.Money,
) (OrderLine, error) {
	if err := errors.Join(
		productID.Validate(),
		quantity.Validate(),
		unitPrice.Validate(),
	); err != nil {
		return OrderLine{}, err
	}

	return OrderLine{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (l OrderLine) Validate() error {
	return l.guard.Validate(ErrOrderLineIsNotConstructed)
}

func (l OrderLine) ProductID() kernel.ProductID {
	return l.productID
}

func (l OrderLine) ProductName() string {
	return l.productName
}

func (l OrderLine) Quantity() kernel.Quantity {
	return l.quantity
}

func (l OrderLine) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Subtotal is the unit price times the quantity.
func (l OrderLine) Subtotal() kernel.Money {
	return l.unitPrice.Multiply(l.quantity.Value())
}

// IsEqual compares lines by product only.
func (l OrderLine) IsEqual(other OrderLine) bool {
	return l.productID.IsEqual(other.productID)
}
