// Package queries contains read-only operations over stored orders.
// Handlers return views: plain structs shaped for front ends, with money rendered as
// two-decimal strings so no precision is lost on the way out.
package queries

import (
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
)

// OrderView is the read model of an order.
type OrderView struct {
	OrderID    string          `json:"orderId"`
	CustomerID string          `json:"customerId"`
	Status     string          `json:"status"`
	Total      string          `json:"total"`
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Items      []OrderLineView `json:"items"`
}

// OrderLineView is the read model of an order line.
type OrderLineView struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Subtotal    string `json:"subtotal"`
}

// PricingView is the read model of a price quote.
type PricingView struct {
	OrderID      string `json:"orderId"`
	Currency     string `json:"currency"`
	Subtotal     string `json:"subtotal"`
	Discount     string `json:"discount"`
	Tax          string `json:"tax"`
	Shipping     string `json:"shipping"`
	FinalPrice   string `json:"finalPrice"`
	MeetsMinimum bool   `json:"meetsMinimum"`
}

func NewOrderView(o *order.Order) OrderView {
	lines := o.Lines()
	items := make([]OrderLineView, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderLineView{
			ProductID:   line.ProductID().String(),
			ProductName: line.ProductName(),
			Quantity:    line.Quantity().Value(),
			UnitPrice:   line.UnitPrice().Amount().StringFixed(2),
			Subtotal:    line.Subtotal().Amount().StringFixed(2),
		})
	}

	return OrderView{
		OrderID:    o.ID().String(),
		CustomerID: o.CustomerID().String(),
		Status:     o.Status().String(),
		Total:      o.Total().Amount().StringFixed(2),
		Currency:   o.Total().Currency().String(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
		Items:      items,
	}
}

func newOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}

func newPricingView(o *order.Order, quote services.PriceQuote) PricingView {
	return PricingView{
		OrderID:      o.ID().String(),
		Currency:     quote.Subtotal.Currency().String(),
		Subtotal:     quote.Subtotal.Amount().StringFixed(2),
		Discount:     quote.Discount.Amount().StringFixed(2),
		Tax:          quote.Tax.Amount().StringFixed(2),
		Shipping:     quote.Shipping.Amount().StringFixed(2),
		FinalPrice:   quote.FinalPrice.Amount().StringFixed(2),
		MeetsMinimum: quote.MeetsMinimum,
	}
}
