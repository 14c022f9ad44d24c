package queries

import (
	"context"

	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
)

// GetOrderPricingQueryHandler prices a stored order with the configured policy.
// It reuses GetOrderQuery as its input.
type GetOrderPricingQueryHandler struct {
	orders  ports.OrderRepository
	pricing services.PricingService
}

func NewGetOrderPricingQueryHandler(
	orders ports.OrderRepository,
	pricing services.PricingService,
) GetOrderPricingQueryHandler {
	return GetOrderPricingQueryHandler{orders: orders, pricing: pricing}
}

func (h GetOrderPricingQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (PricingView, error) {
	if err := query.Validate(); err != nil {
		return PricingView{}, err
	}

	o, err := h.orders.FindByID(ctx, query.OrderID())
	if err != nil {
		return PricingView{}, err
	}

	quote, err := h.pricing.Quote(o)
	if err != nil {
		return PricingView{}, err
	}

	return newPricingView(o, quote), nil
}
