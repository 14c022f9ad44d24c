package queries

import (
	"context"

	"orders/internal/core/ports"
)

type GetCustomerOrdersQueryHandler struct {
	orders ports.OrderRepository
}

func NewGetCustomerOrdersQueryHandler(orders ports.OrderRepository) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{orders: orders}
}

// Handle returns the customer's orders oldest first; an unknown customer yields an empty slice.
func (h GetCustomerOrdersQueryHandler) Handle(ctx context.Context, query GetCustomerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.FindByCustomerID(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}

	return newOrderViews(orders), nil
}
