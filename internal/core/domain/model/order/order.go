package order

import (
	"errors"
	"slices"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a purchase order. Every change to its lines or status goes
// through its methods.
//
// Order follows these invariants:
//   - id and customerID are valid identifiers
//   - total always equals the sum of the line subtotals; it is never set directly
//   - lines change only while the order is Pending
//   - status changes follow the transition table in status.go
//   - events raised since the last ClearEvents stay buffered until the caller clears them
//
// An Order is not safe for concurrent use. Callers load a private copy, mutate it and save it.
type Order struct {
	id         kernel.OrderID
	customerID kernel.CustomerID
	lines      []OrderLine
	status     Status
	total      kernel.Money
	createdAt  time.Time
	updatedAt  time.Time

	// events raised since the last ClearEvents
	events []DomainEvent

	isConstructed bool
}

// NewOrder creates a Pending order with no lines and a zero total, and raises OrderCreated.
//
// Example:
//
//	customerID, _ := kernel.CustomerIDFromString("c1")
//	o, err := order.NewOrder(kernel.NewOrderID(), customerID)
//	if err != nil {
//	    // invalid identifiers
//	}
//	len(o.PendingEvents()) // 1
func NewOrder(id kernel.OrderID, customerID kernel.CustomerID) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		total:         kernel.Zero,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	o.raise(OrderCreated{baseEvent: newBaseEvent(o.id, now), customerID: o.customerID})
	return o, nil
}

// RestoreOrder rebuilds an order read from storage. The total is recomputed from the lines and
// no event is raised.
func RestoreOrder(
	id kernel.OrderID,
	customerID kernel.CustomerID,
	status Status,
	lines []OrderLine,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStatus(status),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) CustomerID() kernel.CustomerID {
	return o.customerID
}

// Lines returns a copy of the lines in insertion order.
func (o *Order) Lines() []OrderLine {
	return slices.Clone(o.lines)
}

// Line returns the first line for productID.
func (o *Order) Line(productID kernel.ProductID) (OrderLine, bool) {
	i := o.lineIndex(productID)
	if i < 0 {
		return OrderLine{}, false
	}
	return o.lines[i], true
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AddLine appends line and recomputes the total.
//
// Fails with errs.ErrTransitionIsInvalid (cause ErrOrderIsNotPending) outside Pending, and with
// errs.ErrCurrencyMismatch when the line is priced in a different currency than the existing lines.
// The order is left unchanged on failure.
func (o *Order) AddLine(line OrderLine) error {
	if err := line.Validate(); err != nil {
		return err
	}
	if err := o.ensureModifiable("add line to"); err != nil {
		return err
	}

	return o.replaceLines(append(slices.Clone(o.lines), line))
}

// RemoveLine removes the first line equal to line (same product) and recomputes the total.
// Removing a product the order does not contain leaves the order untouched.
func (o *Order) RemoveLine(line OrderLine) error {
	if err := o.ensureModifiable("remove line from"); err != nil {
		return err
	}

	i := o.lineIndex(line.ProductID())
	if i < 0 {
		return nil
	}
	return o.replaceLines(slices.Delete(slices.Clone(o.lines), i, i+1))
}

// Confirm moves a Pending order with at least one line to Confirmed.
//
// Fails with errs.ErrTransitionIsInvalid whose cause is ErrOrderIsNotPending when the order is
// not Pending, or ErrOrderIsEmpty when it has no lines.
func (o *Order) Confirm() error {
	next, err := o.status.Apply(OperationConfirm)
	if err != nil {
		return err
	}
	if len(o.lines) == 0 {
		return errs.NewTransitionIsInvalidError(OperationConfirm.String(), o.status.String(), ErrOrderIsEmpty)
	}

	o.moveTo(next)
	return nil
}

// Ship moves a Confirmed order to Shipped.
func (o *Order) Ship() error {
	next, err := o.status.Apply(OperationShip)
	if err != nil {
		return err
	}

	o.moveTo(next)
	return nil
}

// Deliver moves a Shipped order to Delivered.
func (o *Order) Deliver() error {
	next, err := o.status.Apply(OperationDeliver)
	if err != nil {
		return err
	}

	o.moveTo(next)
	return nil
}

// Cancel moves the order to Cancelled from any non-terminal status, Shipped included, and raises
// OrderCancelled with the optional reason. Delivered and Cancelled orders fail with
// errs.ErrTransitionIsInvalid (cause ErrOrderIsInTerminalState).
func (o *Order) Cancel(reason string) error {
	next, err := o.status.Apply(OperationCancel)
	if err != nil {
		return err
	}

	o.moveTo(next)
	o.raise(OrderCancelled{baseEvent: newBaseEvent(o.id, o.updatedAt), reason: reason})
	return nil
}

// PendingEvents returns a snapshot of the events raised since the last ClearEvents.
// Publish them first, then call ClearEvents; on a failed publication keep them for a retry.
func (o *Order) PendingEvents() []DomainEvent {
	return slices.Clone(o.events)
}

// ClearEvents empties the event buffer.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) raise(event DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) moveTo(status Status) {
	o.status = status
	o.touch()
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) ensureModifiable(operation string) error {
	if !o.status.IsModifiable() {
		return errs.NewTransitionIsInvalidError(operation, o.status.String(), ErrOrderIsNotPending)
	}
	return nil
}

func (o *Order) replaceLines(lines []OrderLine) error {
	total, err := sumSubtotals(lines)
	if err != nil {
		return err
	}

	o.lines = lines
	o.total = total
	o.touch()
	return nil
}

func (o *Order) lineIndex(productID kernel.ProductID) int {
	return slices.IndexFunc(o.lines, func(l OrderLine) bool {
		return l.ProductID().IsEqual(productID)
	})
}

// sumSubtotals folds the subtotals left to right from zero in the first line's currency.
func sumSubtotals(lines []OrderLine) (kernel.Money, error) {
	if len(lines) == 0 {
		return kernel.Zero, nil
	}

	total := kernel.ZeroIn(lines[0].UnitPrice().Currency())
	for _, line := range lines {
		var err error
		if total, err = total.Add(line.Subtotal()); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setLines(lines []OrderLine) error {
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	total, err := sumSubtotals(lines)
	if err != nil {
		return err
	}
	o.lines = slices.Clone(lines)
	o.total = total
	return nil
}
