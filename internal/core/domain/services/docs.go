// Package services holds stateless domain logic that reads orders without owning them.
//
// The package includes:
//   - PricingService: discount, tax, shipping and final price derived from an order total
//   - OrderQuery: customer, status and date-range filtering with offset/limit paging
package services
