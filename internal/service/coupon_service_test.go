package service

import (
	"testing"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestComputeDiscount(t *testing.T) {
	testCases := []struct {
		name     string
		coupon   model.Coupon
		subtotal int64
		expected string
	}{
		{
			name: "percentage",
			coupon: model.Coupon{
				DiscountType: constants.CouponTypePercentage,
				Value:        decimal.NewFromInt(10),
			},
			subtotal: 150000,
			expected: "15000",
		},
		{
			name: "percentage capped by max discount",
			coupon: model.Coupon{
				DiscountType: constants.CouponTypePercentage,
				Value:        decimal.NewFromInt(10),
				MaxDiscount:  decimal.NewFromInt(30000),
			},
			subtotal: 500000,
			expected: "30000",
		},
		{
			name: "percentage without max discount is uncapped",
			coupon: model.Coupon{
				DiscountType: constants.CouponTypePercentage,
				Value:        decimal.NewFromInt(20),
			},
			subtotal: 500000,
			expected: "100000",
		},
		{
			name: "fixed amount",
			coupon: model.Coupon{
				DiscountType: constants.CouponTypeFixed,
				Value:        decimal.NewFromInt(20000),
			},
			subtotal: 150000,
			expected: "20000",
		},
		{
			name: "fixed amount never exceeds subtotal",
			coupon: model.Coupon{
				DiscountType: constants.CouponTypeFixed,
				Value:        decimal.NewFromInt(20000),
			},
			subtotal: 5000,
			expected: "5000",
		},
		{
			name: "unknown type gives zero",
			coupon: model.Coupon{
				DiscountType: "MYSTERY",
				Value:        decimal.NewFromInt(50),
			},
			subtotal: 150000,
			expected: "0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			discount := ComputeDiscount(&tc.coupon, decimal.NewFromInt(tc.subtotal))
			require.True(t, decimal.RequireFromString(tc.expected).Equal(discount),
				"expected %s got %s", tc.expected, discount)
		})
	}
}

func TestComputeDiscount_Rounding(t *testing.T) {
	coupon := model.Coupon{
		DiscountType: constants.CouponTypePercentage,
		Value:        decimal.NewFromInt(15),
	}
	// 99999 * 15% = 14999.85
	discount := ComputeDiscount(&coupon, decimal.NewFromInt(99999))
	require.True(t, decimal.RequireFromString("14999.85").Equal(discount))
}
