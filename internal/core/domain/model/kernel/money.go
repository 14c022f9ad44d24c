package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places every Money amount is rounded to.
const moneyScale = 2

// DefaultCurrency is the currency of Zero and of an order without lines.
const DefaultCurrency Currency = "USD"

var (
	ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney, MoneyFromString or MoneyFromFloat")

	// Zero is the zero amount in DefaultCurrency.
	Zero = ZeroIn(DefaultCurrency)
)

// Currency is an ISO 4217 style code: three upper-case letters.
type Currency string

// ParseCurrency accepts a three-letter code in any case and returns it upper-cased.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Currency) Validate() error {
	if c == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if len(c) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a three-letter code", string(c)))
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a three-letter code", string(c)))
		}
	}
	return nil
}

func (c Currency) String() string {
	return string(c)
}

// Money is an immutable amount in a single currency, always rounded half-up to two decimal places.
// Binary operations require both operands to share a currency and fail with errs.ErrCurrencyMismatch otherwise.
//
// Amounts are decimal.Decimal values, so compare Money with IsEqual rather than ==.
type Money struct {
	amount   decimal.Decimal
	currency Currency
	guard    guard.ConstructorGuard
}

// NewMoney rounds amount to two decimal places.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	return newMoney(amount, currency), nil
}

// MoneyFromString parses a decimal string such as "10.005". An empty or unparsable
// string fails with errs.ErrValueIsInvalid for the "amount" parameter.
func MoneyFromString(amount string, currency Currency) (Money, error) {
	if amount == "" {
		return Money{}, errs.NewValueIsRequiredError("amount")
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d, currency)
}

// MoneyFromFloat rejects NaN and infinities.
func MoneyFromFloat(amount float64, currency Currency) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%v is not a finite number", amount))
	}
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// ZeroIn returns the zero amount in currency. The currency is not validated.
func ZeroIn(currency Currency) Money {
	return newMoney(decimal.Zero, currency)
}

func newMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{
		amount:   amount.Round(moneyScale),
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return newMoney(m.amount.Add(other.amount), m.currency), nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return newMoney(m.amount.Sub(other.amount), m.currency), nil
}

// Multiply scales the amount by an integer factor, e.g. a unit price by a quantity.
func (m Money) Multiply(factor int) Money {
	return newMoney(m.amount.Mul(decimal.NewFromInt(int64(factor))), m.currency)
}

// MultiplyBy scales the amount by a decimal factor, e.g. a tax rate.
func (m Money) MultiplyBy(factor decimal.Decimal) Money {
	return newMoney(m.amount.Mul(factor), m.currency)
}

func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

func (m Money) IsLessThan(other Money) (bool, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether both values have the same currency and amount.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String formats the amount with exactly two decimals followed by the currency, e.g. "35.00 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(moneyScale), m.currency)
}

func (m Money) requireSameCurrency(other Money) error {
	if m.currency != other.currency {
		return errs.NewCurrencyMismatchError(string(m.currency), string(other.currency))
	}
	return nil
}
