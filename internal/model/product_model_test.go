package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProduct_FinalPrice(t *testing.T) {
	testCases := []struct {
		name     string
		price    string
		discount string
		expected string
	}{
		{"no discount", "100000", "0", "100000"},
		{"ten percent", "100000", "10", "90000"},
		{"rounds to two decimals", "99999", "15", "84999.15"},
		{"full discount", "50000", "100", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{
				Price:           decimal.RequireFromString(tc.price),
				DiscountPercent: decimal.RequireFromString(tc.discount),
			}
			require.True(t, decimal.RequireFromString(tc.expected).Equal(p.FinalPrice()),
				"expected %s got %s", tc.expected, p.FinalPrice())
		})
	}
}

func TestProduct_HasDiscount(t *testing.T) {
	p := Product{DiscountPercent: decimal.Zero}
	require.False(t, p.HasDiscount())

	p.DiscountPercent = decimal.NewFromInt(5)
	require.True(t, p.HasDiscount())
}
