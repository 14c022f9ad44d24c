// Package kernel provides the value objects shared by the order domain.
//
// The package includes:
//   - Money and Currency: decimal amounts rounded half-up to two places, with currency-checked arithmetic
//   - Quantity: a strictly positive item count
//   - OrderID, CustomerID, ProductID: opaque, non-blank string identifiers
//
// All values are immutable and built through constructors that return an error instead of a
// partially valid value. Zero values fail Validate.
package kernel
