package kernel_test

import (
	"math"
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromString(t *testing.T) {
	t.Run("should round half up to two decimals", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected string
		}{
			{"1.005", "1.01"},
			{"1.004", "1.00"},
			{"2.345", "2.35"},
			{"2.355", "2.36"},
			{"-1.005", "-1.01"},
			{"10", "10.00"},
			{"0.1", "0.10"},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				m, err := kernel.MoneyFromString(tc.input, kernel.DefaultCurrency)

				require.NoError(t, err)
				assert.Equal(t, tc.expected, m.Amount().StringFixed(2))
				assert.Equal(t, int32(-2), m.Amount().Exponent())
			})
		}
	})

	t.Run("should reject missing amount", func(t *testing.T) {
		_, err := kernel.MoneyFromString("", kernel.DefaultCurrency)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unparsable amount", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten dollars", kernel.DefaultCurrency)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("should reject invalid currency", func(t *testing.T) {
		_, err := kernel.MoneyFromString("1.00", "EURO")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.MoneyFromString("1.00", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := kernel.MoneyFromFloat(0.1+0.2, kernel.DefaultCurrency)
	require.NoError(t, err)
	assert.Equal(t, "0.30 USD", m.String())

	_, err = kernel.MoneyFromFloat(math.NaN(), kernel.DefaultCurrency)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = kernel.MoneyFromFloat(math.Inf(1), kernel.DefaultCurrency)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseCurrency(t *testing.T) {
	c, err := kernel.ParseCurrency(" eur ")
	require.NoError(t, err)
	assert.Equal(t, kernel.Currency("EUR"), c)

	for _, bad := range []string{"", "EU", "EURO", "E1R"} {
		_, err = kernel.ParseCurrency(bad)
		require.Error(t, err, bad)
	}
}

func TestZero(t *testing.T) {
	require.NoError(t, kernel.Zero.Validate())
	assert.True(t, kernel.Zero.IsZero())
	assert.False(t, kernel.Zero.IsPositive())
	assert.False(t, kernel.Zero.IsNegative())
	assert.Equal(t, kernel.DefaultCurrency, kernel.Zero.Currency())
	assert.Equal(t, "0.00 USD", kernel.Zero.String())
}

func TestMoney_Arithmetic(t *testing.T) {
	ten := mustMoney(t, "10.00", "USD")
	five := mustMoney(t, "5.00", "USD")
	euro := mustMoney(t, "5.00", "EUR")

	t.Run("add", func(t *testing.T) {
		sum, err := ten.Add(five)

		require.NoError(t, err)
		assert.Equal(t, "15.00 USD", sum.String())
	})

	t.Run("subtract may go negative", func(t *testing.T) {
		diff, err := five.Subtract(ten)

		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
		assert.Equal(t, "-5.00 USD", diff.String())
	})

	t.Run("multiply by integer", func(t *testing.T) {
		assert.Equal(t, "30.00 USD", ten.Multiply(3).String())
	})

	t.Run("multiply by decimal rounds half up", func(t *testing.T) {
		price := mustMoney(t, "33.33", "USD")

		assert.Equal(t, "7.00 USD", price.MultiplyBy(decimal.RequireFromString("0.21")).String())
		assert.Equal(t, "0.01 USD", mustMoney(t, "0.05", "USD").MultiplyBy(decimal.RequireFromString("0.1")).String())
	})

	t.Run("operations leave operands untouched", func(t *testing.T) {
		_, _ = ten.Add(five)
		_ = ten.Multiply(7)

		assert.Equal(t, "10.00 USD", ten.String())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := ten.Add(euro)
		require.ErrorIs(t, err, errs.ErrCurrencyMismatch)

		_, err = ten.Subtract(euro)
		require.ErrorIs(t, err, errs.ErrCurrencyMismatch)

		_, err = ten.IsGreaterThan(euro)
		require.ErrorIs(t, err, errs.ErrCurrencyMismatch)

		_, err = ten.IsLessThan(euro)
		require.ErrorIs(t, err, errs.ErrCurrencyMismatch)
	})
}

func TestMoney_Comparison(t *testing.T) {
	ten := mustMoney(t, "10.00", "USD")
	five := mustMoney(t, "5.00", "USD")

	greater, err := ten.IsGreaterThan(five)
	require.NoError(t, err)
	assert.True(t, greater)

	less, err := ten.IsLessThan(five)
	require.NoError(t, err)
	assert.False(t, less)

	same, err := ten.IsGreaterThan(mustMoney(t, "10", "USD"))
	require.NoError(t, err)
	assert.False(t, same)

	assert.True(t, ten.IsEqual(mustMoney(t, "10.000", "USD")))
	assert.False(t, ten.IsEqual(mustMoney(t, "10.00", "EUR")))
	assert.True(t, ten.IsPositive())
}

func TestMoney_Validate(t *testing.T) {
	var m kernel.Money

	assert.Equal(t, kernel.ErrMoneyIsNotConstructed, m.Validate())
}

func FuzzMoneyFromString(f *testing.F) {
	f.Add("1.005")
	f.Add("-0.005")
	f.Add("123456789.999")
	f.Add("abc")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 40 {
			t.Skip()
		}
		m, err := kernel.MoneyFromString(input, kernel.DefaultCurrency)
		if err != nil {
			assert.Zero(t, m)
			return
		}
		assert.True(t, m.Amount().Equal(m.Amount().Round(2)))
		require.NoError(t, m.Validate())
	})
}

func mustMoney(t *testing.T, amount string, currency kernel.Currency) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount, currency)
	require.NoError(t, err)
	return m
}
