package kafka

import (
	"time"

	"orders/internal/core/domain/model/order"
)

// OrderEventMessage is the JSON value of every order event written to Kafka.
// Fields that do not apply to an event type are omitted.
type OrderEventMessage struct {
	EventID        string    `json:"eventId"`
	EventType      string    `json:"eventType"`
	RoutingKey     string    `json:"routingKey"`
	OrderID        string    `json:"orderId"`
	CustomerID     string    `json:"customerId,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	NewStatus      string    `json:"newStatus,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewOrderEventMessage flattens a domain event into its wire form.
func NewOrderEventMessage(event order.DomainEvent) OrderEventMessage {
	msg := OrderEventMessage{
		EventID:    event.EventID().String(),
		EventType:  string(event.EventType()),
		RoutingKey: event.EventType().RoutingKey(),
		OrderID:    event.OrderID().String(),
		OccurredAt: event.OccurredAt().UTC(),
	}

	switch e := event.(type) {
	case order.OrderCreated:
		msg.CustomerID = e.CustomerID().String()
	case order.OrderCancelled:
		msg.Reason = e.Reason()
	case order.OrderStatusChanged:
		msg.PreviousStatus = e.PreviousStatus().String()
		msg.NewStatus = e.NewStatus().String()
	}

	return msg
}
