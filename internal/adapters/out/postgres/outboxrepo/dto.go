// Package outboxrepo stores domain events in the outbox_messages table until the relay job
// has handed them to the event sink.
package outboxrepo

import (
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO is one stored event. Sequence gives a total insertion order, which occurred_at
// alone cannot since events raised by one command may share a timestamp.
type OutboxMessageDTO struct {
	Sequence       int64      `gorm:"primaryKey;autoIncrement"`
	ID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	EventID        uuid.UUID  `gorm:"type:uuid;not null"`
	EventType      string     `gorm:"type:varchar(64);not null"`
	OrderID        string     `gorm:"type:varchar(64);not null;index"`
	CustomerID     string     `gorm:"type:varchar(64)"`
	Reason         string     `gorm:"type:text"`
	PreviousStatus string     `gorm:"type:varchar(16)"`
	NewStatus      string     `gorm:"type:varchar(16)"`
	OccurredAt     time.Time  `gorm:"not null"`
	PublishedAt    *time.Time `gorm:"index"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(event order.DomainEvent) OutboxMessageDTO {
	dto := OutboxMessageDTO{
		ID:         uuid.New(),
		EventID:    event.EventID(),
		EventType:  string(event.EventType()),
		OrderID:    event.OrderID().String(),
		OccurredAt: event.OccurredAt(),
	}

	switch e := event.(type) {
	case order.OrderCreated:
		dto.CustomerID = e.CustomerID().String()
	case order.OrderCancelled:
		dto.Reason = e.Reason()
	case order.OrderStatusChanged:
		dto.PreviousStatus = e.PreviousStatus().String()
		dto.NewStatus = e.NewStatus().String()
	}

	return dto
}

func toDomain(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	orderID, err := kernel.OrderIDFromString(dto.OrderID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	occurredAt := dto.OccurredAt.UTC()

	var event order.DomainEvent
	switch order.EventType(dto.EventType) {
	case order.EventTypeOrderCreated:
		customerID, customerErr := kernel.CustomerIDFromString(dto.CustomerID)
		if customerErr != nil {
			return ports.OutboxMessage{}, customerErr
		}
		event = order.RestoreOrderCreated(dto.EventID, orderID, customerID, occurredAt)
	case order.EventTypeOrderCancelled:
		event = order.RestoreOrderCancelled(dto.EventID, orderID, dto.Reason, occurredAt)
	case order.EventTypeOrderStatusChanged:
		previous, previousErr := order.ParseStatus(dto.PreviousStatus)
		if previousErr != nil {
			return ports.OutboxMessage{}, previousErr
		}
		current, currentErr := order.ParseStatus(dto.NewStatus)
		if currentErr != nil {
			return ports.OutboxMessage{}, currentErr
		}
		event = order.RestoreOrderStatusChanged(dto.EventID, orderID, previous, current, occurredAt)
	default:
		return ports.OutboxMessage{}, fmt.Errorf("outbox message %s: unknown event type %q", dto.ID, dto.EventType)
	}

	return ports.OutboxMessage{ID: dto.ID, Event: event}, nil
}
