package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(19.99), USD)
	require.NoError(t, err)
	assert.Equal(t, USD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.99)))

	_, err = NewMoney(decimal.NewFromInt(1), "")
	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyUSDFromString("42.50")
	require.NoError(t, err)
	assert.Equal(t, "42.50", m.StringFixed(2))

	_, err = NewMoneyUSDFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyUSDFromFloat(10.25)
	b := NewMoneyUSDFromFloat(4.75)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "15.00", sum.StringFixed(2))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "5.50", diff.StringFixed(2))

	eur := Zero(EUR)
	_, err = a.Add(eur)
	assert.Error(t, err)
	_, err = a.Subtract(eur)
	assert.Error(t, err)
}

func TestMoney_Multiply(t *testing.T) {
	price := NewMoneyUSDFromFloat(20.00)
	assert.Equal(t, "60.00", price.MultiplyByInt(3).StringFixed(2))
	assert.Equal(t, "2.00", price.Multiply(decimal.NewFromFloat(0.1)).StringFixed(2))
}

func TestMoney_CalculatePercentage(t *testing.T) {
	subtotal := NewMoneyUSDFromFloat(55.00)
	discount := subtotal.CalculatePercentage(decimal.NewFromInt(10))
	assert.Equal(t, "5.50", discount.StringFixed(2))

	discounted := subtotal.ApplyDiscount(decimal.NewFromInt(10))
	assert.Equal(t, "49.50", discounted.StringFixed(2))
}

func TestMoney_FullPrecisionUntilPresentation(t *testing.T) {
	// 49.50 * 7% = 3.465; must not round mid-calculation
	tax := NewMoneyUSDFromFloat(49.50).Multiply(decimal.NewFromFloat(0.07))
	assert.True(t, tax.Amount().Equal(decimal.NewFromFloat(3.465)))
	assert.Equal(t, "3.47", tax.StringFixed(2))
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSDFromFloat(1).IsPositive())
	assert.True(t, NewMoneyUSDFromFloat(-1).IsNegative())

	lt, err := NewMoneyUSDFromFloat(1).LessThan(NewMoneyUSDFromFloat(2))
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := NewMoneyUSDFromFloat(3).GreaterThan(NewMoneyUSDFromFloat(2))
	require.NoError(t, err)
	assert.True(t, gt)
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyUSDFromFloat(12.34)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("12.50"))
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.Equal(t, "12.50", m.StringFixed(2))

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(12.5))
}
