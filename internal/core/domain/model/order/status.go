package order

import (
	"errors"
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotPending is the cause when lines are changed or the order is confirmed outside Pending.
	ErrOrderIsNotPending = errors.New("order is not pending")

	// ErrOrderIsEmpty is the cause when an order without lines is confirmed.
	ErrOrderIsEmpty = errors.New("order has no lines")

	// ErrOrderIsInTerminalState is the cause when a delivered or cancelled order is cancelled.
	ErrOrderIsInTerminalState = errors.New("order is in a terminal state")

	// ErrStatusTransitionIsNotAllowed is the cause for any other operation the current status does not accept.
	ErrStatusTransitionIsNotAllowed = errors.New("status transition is not allowed")
)

// Status is the lifecycle state of an order.
//
//	Pending ──> Confirmed ──> Shipped ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Cancellation is accepted from Shipped as well.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota
	Pending
	Confirmed
	Shipped
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "Pending",
	Confirmed: "Confirmed",
	Shipped:   "Shipped",
	Delivered: "Delivered",
	Cancelled: "Cancelled",
}

// Operation is a status-changing command understood by the transition table.
type Operation int

const (
	OperationConfirm Operation = iota + 1
	OperationShip
	OperationDeliver
	OperationCancel
)

var operationNames = map[Operation]string{
	OperationConfirm: "confirm",
	OperationShip:    "ship",
	OperationDeliver: "deliver",
	OperationCancel:  "cancel",
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return "unknown"
}

// ParseOperation accepts "confirm", "ship", "deliver" or "cancel" in any case.
func ParseOperation(s string) (Operation, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for op, opName := range operationNames {
		if opName == name {
			return op, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("operation", fmt.Errorf("%q is not a known operation", s))
}

type transition struct {
	from Status
	op   Operation
}

// transitions is the whole state machine. Any (status, operation) pair missing here is rejected.
var transitions = map[transition]Status{
	{Pending, OperationConfirm}:  Confirmed,
	{Pending, OperationCancel}:   Cancelled,
	{Confirmed, OperationShip}:   Shipped,
	{Confirmed, OperationCancel}: Cancelled,
	{Shipped, OperationDeliver}:  Delivered,
	{Shipped, OperationCancel}:   Cancelled,
}

// Apply looks up the status reached by op. A missing entry yields an
// errs.TransitionIsInvalidError whose cause names the violated rule.
func (s Status) Apply(op Operation) (Status, error) {
	if next, ok := transitions[transition{from: s, op: op}]; ok {
		return next, nil
	}
	return Unknown, errs.NewTransitionIsInvalidError(op.String(), s.String(), rejectionCause(s, op))
}

func rejectionCause(from Status, op Operation) error {
	switch {
	case op == OperationConfirm:
		return ErrOrderIsNotPending
	case op == OperationCancel && from.IsFinal():
		return ErrOrderIsInTerminalState
	default:
		return ErrStatusTransitionIsNotAllowed
	}
}

// ParseStatus matches a display name case-insensitively, ignoring surrounding blanks.
func ParseStatus(s string) (Status, error) {
	name := strings.TrimSpace(s)
	for status, statusName := range statusNames {
		if strings.EqualFold(statusName, name) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsModifiable reports whether lines may be added or removed.
func (s Status) IsModifiable() bool {
	return s == Pending
}

func (s Status) IsCancellable() bool {
	_, ok := transitions[transition{from: s, op: OperationCancel}]
	return ok
}

func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}
