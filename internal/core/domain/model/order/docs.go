// Package order implements the purchase order aggregate.
//
// The package includes:
//   - Order: the aggregate root owning lines, status, total and the pending event buffer
//   - OrderLine: an immutable line item keyed by product
//   - Status: the lifecycle state machine, driven by a single (status, operation) transition table
//   - DomainEvent: OrderCreated, OrderCancelled and OrderStatusChanged
//
// Key business rules:
//   - Lines are added or removed only while the order is Pending
//   - An order without lines cannot be confirmed
//   - Status moves Pending -> Confirmed -> Shipped -> Delivered without skipping a step
//   - Any status except Delivered and Cancelled can be cancelled
//   - Only construction and cancellation raise events
package order
