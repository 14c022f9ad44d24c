package services

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PricingPolicy holds the thresholds and rates applied by PricingService. Amounts are read in
// the currency of the order being priced.
type PricingPolicy struct {
	// DiscountThreshold is the total above which DiscountRate applies.
	DiscountThreshold decimal.Decimal
	DiscountRate      decimal.Decimal
	TaxRate           decimal.Decimal
	// MinimumOrder is the smallest total an order may have to meet the minimum.
	MinimumOrder decimal.Decimal
	// FreeShippingThreshold is the total above which shipping is free.
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

// DefaultPricingPolicy: 10% off above 100.00, 21% tax, 10.00 minimum, 5.99 shipping up to 50.00.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		DiscountThreshold:     decimal.RequireFromString("100.00"),
		DiscountRate:          decimal.RequireFromString("0.10"),
		TaxRate:               decimal.RequireFromString("0.21"),
		MinimumOrder:          decimal.RequireFromString("10.00"),
		FreeShippingThreshold: decimal.RequireFromString("50.00"),
		ShippingFee:           decimal.RequireFromString("5.99"),
	}
}

// Validate requires rates within [0, 1] and non-negative amounts.
func (p PricingPolicy) Validate() error {
	one := decimal.NewFromInt(1)
	rate := func(name string, v decimal.Decimal) error {
		if v.IsNegative() || v.GreaterThan(one) {
			return errs.NewValueIsOutOfRangeError(name, v.String(), 0, 1)
		}
		return nil
	}
	amount := func(name string, v decimal.Decimal) error {
		if v.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v))
		}
		return nil
	}

	return errors.Join(
		amount("discountThreshold", p.DiscountThreshold),
		rate("discountRate", p.DiscountRate),
		rate("taxRate", p.TaxRate),
		amount("minimumOrder", p.MinimumOrder),
		amount("freeShippingThreshold", p.FreeShippingThreshold),
		amount("shippingFee", p.ShippingFee),
	)
}

// PriceQuote is the full price breakdown of an order.
type PriceQuote struct {
	Subtotal     kernel.Money
	Discount     kernel.Money
	Tax          kernel.Money
	Shipping     kernel.Money
	FinalPrice   kernel.Money
	MeetsMinimum bool
}

// PricingService derives prices from an order total. It holds no state besides its policy.
//
// Example:
//
//	pricing, _ := services.NewPricingService(services.DefaultPricingPolicy())
//	// total 200.00: discount 20.00, tax 37.80, final price 217.80
//	final, err := pricing.FinalPrice(o)
type PricingService struct {
	policy PricingPolicy
}

func NewPricingService(policy PricingPolicy) (PricingService, error) {
	if err := policy.Validate(); err != nil {
		return PricingService{}, err
	}
	return PricingService{policy: policy}, nil
}

func (s PricingService) Policy() PricingPolicy {
	return s.policy
}

// Discount is DiscountRate of the total when the total exceeds DiscountThreshold, zero otherwise.
func (s PricingService) Discount(o *order.Order) kernel.Money {
	total := o.Total()
	if total.Amount().GreaterThan(s.policy.DiscountThreshold) {
		return total.MultiplyBy(s.policy.DiscountRate)
	}
	return kernel.ZeroIn(total.Currency())
}

// Tax is TaxRate of amount.
func (s PricingService) Tax(amount kernel.Money) kernel.Money {
	return amount.MultiplyBy(s.policy.TaxRate)
}

// FinalPrice is (total - discount) + tax(total - discount). Shipping is not included.
func (s PricingService) FinalPrice(o *order.Order) (kernel.Money, error) {
	net, err := o.Total().Subtract(s.Discount(o))
	if err != nil {
		return kernel.Money{}, err
	}
	return net.Add(s.Tax(net))
}

// MeetsMinimum reports whether the total is at least MinimumOrder.
func (s PricingService) MeetsMinimum(o *order.Order) bool {
	return o.Total().Amount().GreaterThanOrEqual(s.policy.MinimumOrder)
}

// ShippingCost is free when the total exceeds FreeShippingThreshold, ShippingFee otherwise.
func (s PricingService) ShippingCost(o *order.Order) kernel.Money {
	total := o.Total()
	if total.Amount().GreaterThan(s.policy.FreeShippingThreshold) {
		return kernel.ZeroIn(total.Currency())
	}
	// the currency comes from a constructed total, so NewMoney cannot fail here
	fee, _ := kernel.NewMoney(s.policy.ShippingFee, total.Currency())
	return fee
}

// Quote computes every component at once.
func (s PricingService) Quote(o *order.Order) (PriceQuote, error) {
	if err := o.Validate(); err != nil {
		return PriceQuote{}, err
	}

	discount := s.Discount(o)
	net, err := o.Total().Subtract(discount)
	if err != nil {
		return PriceQuote{}, err
	}
	tax := s.Tax(net)
	final, err := net.Add(tax)
	if err != nil {
		return PriceQuote{}, err
	}

	return PriceQuote{
		Subtotal:     o.Total(),
		Discount:     discount,
		Tax:          tax,
		Shipping:     s.ShippingCost(o),
		FinalPrice:   final,
		MeetsMinimum: s.MeetsMinimum(o),
	}, nil
}
