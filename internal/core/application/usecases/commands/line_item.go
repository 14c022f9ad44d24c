package commands

import (
	"errors"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// LineItem is the raw input for one order line. UnitPrice is a decimal string; an empty
// Currency means kernel.DefaultCurrency. ProductName may be empty.
type LineItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   string
	Currency    string
}

// toOrderLine parses every field and reports all failures at once.
func (i LineItem) toOrderLine() (order.OrderLine, error) {
	productID, productErr := kernel.ProductIDFromString(i.ProductID)
	quantity, quantityErr := kernel.NewQuantity(i.Quantity)

	currency := kernel.DefaultCurrency
	var currencyErr error
	if strings.TrimSpace(i.Currency) != "" {
		currency, currencyErr = kernel.ParseCurrency(i.Currency)
	}

	var price kernel.Money
	var priceErr error
	if currencyErr == nil {
		price, priceErr = kernel.MoneyFromString(i.UnitPrice, currency)
	}

	if err := errors.Join(productErr, quantityErr, currencyErr, priceErr); err != nil {
		return order.OrderLine{}, err
	}

	return order.NewOrderLine(productID, i.ProductName, quantity, price)
}
