package domain

import (
	"testing"

	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"12.5", 1250},
		{"12.50", 1250},
		{"8.90", 890},
		{"0", 0},
		{"600", 60000},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseMoney_Rejects(t *testing.T) {
	_, err := ParseMoney("-1.00")
	assert.ErrorIs(t, err, e.ErrInvalidPrice)

	_, err = ParseMoney("1.005")
	assert.ErrorIs(t, err, e.ErrPricePrecision)

	_, err = ParseMoney("abc")
	assert.ErrorIs(t, err, e.ErrInvalidPrice)
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "33.90", Money(3390).String())
	assert.Equal(t, "0.00", Money(0).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "1250.00", Money(125000).String())
}

func TestMoney_MulHasNoDrift(t *testing.T) {
	// 0.1 * 3 в float64 даёт 0.30000000000000004
	assert.Equal(t, "0.30", Money(10).Mul(3).String())
}

func TestProduct_ClampQuantity(t *testing.T) {
	p := Product{Stock: 5}

	assert.Equal(t, 1, p.ClampQuantity(0))
	assert.Equal(t, 1, p.ClampQuantity(-3))
	assert.Equal(t, 3, p.ClampQuantity(3))
	assert.Equal(t, 5, p.ClampQuantity(9))
}
