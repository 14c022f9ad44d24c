// Package orderrepo persists order aggregates in two tables: orders and order_lines.
// Lines are keyed by (order_id, position) so their insertion order survives a round trip.
package orderrepo

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Total and Currency are denormalised for reporting; the aggregate
// recomputes its total from the lines on load.
type OrderDTO struct {
	ID         string          `gorm:"type:varchar(64);primaryKey"`
	CustomerID string          `gorm:"type:varchar(64);not null;index"`
	Status     string          `gorm:"type:varchar(16);not null;index"`
	Total      decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency   string          `gorm:"type:char(3);not null"`
	CreatedAt  time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime:false"`
	Lines      []OrderLineDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is the order_lines row.
type OrderLineDTO struct {
	OrderID     string          `gorm:"type:varchar(64);primaryKey"`
	Position    int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID   string          `gorm:"type:varchar(64);not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency    string          `gorm:"type:char(3);not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(19,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	lines := aggregate.Lines()
	dtoLines := make([]OrderLineDTO, 0, len(lines))
	for i, line := range lines {
		dtoLines = append(dtoLines, OrderLineDTO{
			OrderID:     aggregate.ID().String(),
			Position:    i,
			ProductID:   line.ProductID().String(),
			ProductName: line.ProductName(),
			Quantity:    line.Quantity().Value(),
			UnitPrice:   line.UnitPrice().Amount(),
			Currency:    line.UnitPrice().Currency().String(),
			Subtotal:    line.Subtotal().Amount(),
		})
	}

	return OrderDTO{
		ID:         aggregate.ID().String(),
		CustomerID: aggregate.CustomerID().String(),
		Status:     aggregate.Status().String(),
		Total:      aggregate.Total().Amount(),
		Currency:   aggregate.Total().Currency().String(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
		Lines:      dtoLines,
	}
}

// toDomain rebuilds the aggregate through order.RestoreOrder. Lines must already be sorted by
// position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, idErr := kernel.OrderIDFromString(dto.ID)
	customerID, customerErr := kernel.CustomerIDFromString(dto.CustomerID)
	status, statusErr := order.ParseStatus(dto.Status)
	if err := errors.Join(idErr, customerErr, statusErr); err != nil {
		return nil, fmt.Errorf("order %s: %w", dto.ID, err)
	}

	lines := make([]order.OrderLine, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, err := lineToDomain(l)
		if err != nil {
			return nil, fmt.Errorf("order %s line %d: %w", dto.ID, l.Position, err)
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, customerID, status, lines, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}

func lineToDomain(dto OrderLineDTO) (order.OrderLine, error) {
	productID, productErr := kernel.ProductIDFromString(dto.ProductID)
	quantity, quantityErr := kernel.NewQuantity(dto.Quantity)
	currency, currencyErr := kernel.ParseCurrency(dto.Currency)
	if err := errors.Join(productErr, quantityErr, currencyErr); err != nil {
		return order.OrderLine{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice, currency)
	if err != nil {
		return order.OrderLine{}, err
	}

	return order.NewOrderLine(productID, dto.ProductName, quantity, unitPrice)
}
