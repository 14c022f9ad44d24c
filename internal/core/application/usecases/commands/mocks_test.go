package commands_test

import (
	"context"
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
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

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, events ...order.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event order.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishTo(ctx context.Context, event order.DomainEvent, destination string) error {
	args := m.Called(ctx, event, destination)
	return args.Error(0)
}

// orderUoWFixture wires a unit of work whose repositories are both mocks.
type orderUoWFixture struct {
	factory *MockOrderUoWFactory
	uow     *MockOrderUoW
	orders  *MockOrderRepository
	outbox  *MockOutboxRepository
}

func newOrderUoWFixture() orderUoWFixture {
	f := orderUoWFixture{
		factory: new(MockOrderUoWFactory),
		uow:     new(MockOrderUoW),
		orders:  new(MockOrderRepository),
		outbox:  new(MockOutboxRepository),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("OutboxRepository").Return(f.outbox).Maybe()
	return f
}

func (f orderUoWFixture) assertExpectations(t mock.TestingT) {
	f.factory.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.outbox.AssertExpectations(t)
}

func pendingOrderWithLine(t *testing.T) *order.Order {
	t.Helper()

	customerID, err := kernel.CustomerIDFromString("c1")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewOrderID(), customerID)
	require.NoError(t, err)
	o.ClearEvents()

	require.NoError(t, o.AddLine(newLine(t, "p1", 2, "10.00")))
	return o
}

func newLine(t *testing.T, product string, qty int, price string) order.OrderLine {
	t.Helper()

	productID, err := kernel.ProductIDFromString(product)
	require.NoError(t, err)
	quantity, err := kernel.NewQuantity(qty)
	require.NoError(t, err)
	unitPrice, err := kernel.MoneyFromString(price, kernel.DefaultCurrency)
	require.NoError(t, err)
	line, err := order.NewOrderLine(productID, "Widget "+product, quantity, unitPrice)
	require.NoError(t, err)
	return line
}

func eventTypes(events []order.DomainEvent) []order.EventType {
	types := make([]order.EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.EventType())
	}
	return types
}
