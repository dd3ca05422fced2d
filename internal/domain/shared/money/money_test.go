package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizesCurrency(t *testing.T) {
	m, err := New(decimal.NewFromInt(10), "inr")
	require.NoError(t, err)
	assert.Equal(t, "INR", m.Currency)

	_, err = New(decimal.NewFromInt(10), "RUPEE")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestAddRequiresSameCurrency(t *testing.T) {
	sum, err := FromInt(100, "INR").Add(FromInt(50, "INR"))
	require.NoError(t, err)
	assert.True(t, sum.Equal(FromInt(150, "INR")))

	_, err = FromInt(100, "INR").Add(FromInt(50, "USD"))
	assert.True(t, errors.Is(err, ErrCurrencyMismatch))

	_, err = Money{Amount: decimal.NewFromInt(1)}.Add(FromInt(1, "INR"))
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestMulKeepsPrecision(t *testing.T) {
	m := Must(decimal.RequireFromString("0.1"), "USD").MulInt(3)
	assert.Equal(t, "0.3", m.Amount.String())

	m = FromInt(999, "INR").Mul(decimal.RequireFromString("0.12"))
	assert.Equal(t, "119.88", m.Amount.String())
}

func TestRound(t *testing.T) {
	v := Must(decimal.RequireFromString("143.5"), "INR")
	assert.Equal(t, "144", v.Round(0, RoundHalfUp).Amount.String())
	assert.Equal(t, "144", v.Round(0, RoundHalfEven).Amount.String())
	assert.Equal(t, "143", v.Round(0, RoundDown).Amount.String())
	assert.Equal(t, "144", v.Round(0, RoundUp).Amount.String())

	v = Must(decimal.RequireFromString("142.5"), "INR")
	assert.Equal(t, "143", v.Round(0, RoundHalfUp).Amount.String())
	assert.Equal(t, "142", v.Round(0, RoundHalfEven).Amount.String())
}

func TestParseRoundingMode(t *testing.T) {
	mode, err := ParseRoundingMode("")
	require.NoError(t, err)
	assert.Equal(t, RoundHalfUp, mode)

	mode, err = ParseRoundingMode(" HALF_EVEN ")
	require.NoError(t, err)
	assert.Equal(t, RoundHalfEven, mode)

	_, err = ParseRoundingMode("ceiling")
	assert.ErrorIs(t, err, ErrUnknownRounding)
}
