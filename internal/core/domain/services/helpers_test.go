package services_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func orderWithTotal(t *testing.T, total string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewOrderID(), kernel.NewCustomerID())
	require.NoError(t, err)

	if total == "0" {
		return o
	}
	productID := kernel.NewProductID()
	quantity, err := kernel.NewQuantity(1)
	require.NoError(t, err)
	price, err := kernel.MoneyFromString(total, kernel.DefaultCurrency)
	require.NoError(t, err)
	line, err := order.NewOrderLine(productID, "", quantity, price)
	require.NoError(t, err)
	require.NoError(t, o.AddLine(line))
	return o
}

func restoredOrder(t *testing.T, customer string, status order.Status, createdAt time.Time) *order.Order {
	t.Helper()
	customerID, err := kernel.CustomerIDFromString(customer)
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewOrderID(), customerID, status, nil, createdAt, createdAt)
	require.NoError(t, err)
	return o
}
