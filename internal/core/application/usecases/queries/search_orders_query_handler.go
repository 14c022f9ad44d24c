package queries

import (
	"context"

	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
)

// SearchOrdersQueryHandler filters and pages over every stored order with a services.OrderQuery.
//
// Example:
//
//	query, err := services.NewOrderQuery(services.OrderFilter{CustomerID: "c1", Status: "pending"})
//	views, err := handler.Handle(ctx, query)
type SearchOrdersQueryHandler struct {
	orders ports.OrderRepository
}

func NewSearchOrdersQueryHandler(orders ports.OrderRepository) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{orders: orders}
}

func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query services.OrderQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return newOrderViews(query.Apply(orders)), nil
}
