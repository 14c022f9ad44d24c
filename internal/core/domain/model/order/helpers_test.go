package order_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, customer string) *order.Order {
	t.Helper()
	customerID, err := kernel.CustomerIDFromString(customer)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewOrderID(), customerID)
	require.NoError(t, err)
	return o
}

func newTestLine(t *testing.T, product string, qty int, price string) order.OrderLine {
	t.Helper()
	return newTestLineIn(t, product, qty, price, kernel.DefaultCurrency)
}

func newTestLineIn(t *testing.T, product string, qty int, price string, currency kernel.Currency) order.OrderLine {
	t.Helper()
	productID, err := kernel.ProductIDFromString(product)
	require.NoError(t, err)
	quantity, err := kernel.NewQuantity(qty)
	require.NoError(t, err)
	unitPrice, err := kernel.MoneyFromString(price, currency)
	require.NoError(t, err)

	line, err := order.NewOrderLine(productID, "Product "+product, quantity, unitPrice)
	require.NoError(t, err)
	return line
}
