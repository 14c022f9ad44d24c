package order

import (
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventType tags the kind of a DomainEvent.
type EventType string

const (
	EventTypeOrderCreated       EventType = "OrderCreated"
	EventTypeOrderCancelled     EventType = "OrderCancelled"
	EventTypeOrderStatusChanged EventType = "OrderStatusChanged"
)

// RoutingKey is the lower-cased type, e.g. "ordercreated".
func (t EventType) RoutingKey() string {
	return strings.ToLower(string(t))
}

// DomainEvent records something that happened to an order. The set of implementations is closed:
// OrderCreated, OrderCancelled and OrderStatusChanged.
//
// EventID is unique per event so consumers can drop duplicates; delivery is at-least-once.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() EventType
	OrderID() kernel.OrderID
	OccurredAt() time.Time

	isDomainEvent()
}

type baseEvent struct {
	eventID    uuid.UUID
	orderID    kernel.OrderID
	occurredAt time.Time
}

func newBaseEvent(orderID kernel.OrderID, occurredAt time.Time) baseEvent {
	return baseEvent{eventID: uuid.New(), orderID: orderID, occurredAt: occurredAt}
}

func (e baseEvent) EventID() uuid.UUID {
	return e.eventID
}

func (e baseEvent) OrderID() kernel.OrderID {
	return e.orderID
}

func (e baseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

func (baseEvent) isDomainEvent() {}

// OrderCreated is raised once, when the order is constructed.
type OrderCreated struct {
	baseEvent
	customerID kernel.CustomerID
}

func (OrderCreated) EventType() EventType {
	return EventTypeOrderCreated
}

func (e OrderCreated) CustomerID() kernel.CustomerID {
	return e.customerID
}

// OrderCancelled carries the optional cancellation reason; an empty string means none was given.
type OrderCancelled struct {
	baseEvent
	reason string
}

func (OrderCancelled) EventType() EventType {
	return EventTypeOrderCancelled
}

func (e OrderCancelled) Reason() string {
	return e.reason
}

// OrderStatusChanged describes a move between two statuses. The aggregate does not raise it for
// confirm, ship or deliver; it exists for integrations that build it themselves.
type OrderStatusChanged struct {
	baseEvent
	previous Status
	current  Status
}

func NewOrderStatusChanged(orderID kernel.OrderID, previous, current Status, occurredAt time.Time) OrderStatusChanged {
	return OrderStatusChanged{baseEvent: newBaseEvent(orderID, occurredAt), previous: previous, current: current}
}

func (OrderStatusChanged) EventType() EventType {
	return EventTypeOrderStatusChanged
}

func (e OrderStatusChanged) PreviousStatus() Status {
	return e.previous
}

func (e OrderStatusChanged) NewStatus() Status {
	return e.current
}

// RestoreOrderCreated rebuilds a stored event, keeping its identity and timestamp.
func RestoreOrderCreated(eventID uuid.UUID, orderID kernel.OrderID, customerID kernel.CustomerID, occurredAt time.Time) OrderCreated {
	return OrderCreated{
		baseEvent:  baseEvent{eventID: eventID, orderID: orderID, occurredAt: occurredAt},
		customerID: customerID,
	}
}

func RestoreOrderCancelled(eventID uuid.UUID, orderID kernel.OrderID, reason string, occurredAt time.Time) OrderCancelled {
	return OrderCancelled{
		baseEvent: baseEvent{eventID: eventID, orderID: orderID, occurredAt: occurredAt},
		reason:    reason,
	}
}

func RestoreOrderStatusChanged(
	eventID uuid.UUID,
	orderID kernel.OrderID,
	previous, current Status,
	occurredAt time.Time,
) OrderStatusChanged {
	return OrderStatusChanged{
		baseEvent: baseEvent{eventID: eventID, orderID: orderID, occurredAt: occurredAt},
		previous:  previous,
		current:   current,
	}
}
