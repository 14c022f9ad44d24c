package queries_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindByCustomerID(ctx context.Context, id kernel.CustomerID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) DeleteByID(ctx context.Context, id kernel.OrderID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) ExistsByID(ctx context.Context, id kernel.OrderID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type lineSpec struct {
	product string
	qty     int
	price   string
}

func storedOrder(t *testing.T, customer string, status order.Status, createdAt time.Time, lines ...lineSpec) *order.Order {
	t.Helper()

	orderLines := make([]order.OrderLine, 0, len(lines))
	for _, l := range lines {
		productID, err := kernel.ProductIDFromString(l.product)
		require.NoError(t, err)
		quantity, err := kernel.NewQuantity(l.qty)
		require.NoError(t, err)
		price, err := kernel.MoneyFromString(l.price, kernel.DefaultCurrency)
		require.NoError(t, err)
		line, err := order.NewOrderLine(productID, "Product "+l.product, quantity, price)
		require.NoError(t, err)
		orderLines = append(orderLines, line)
	}

	customerID, err := kernel.CustomerIDFromString(customer)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewOrderID(), customerID, status, orderLines, createdAt, createdAt)
	require.NoError(t, err)
	return o
}
