package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ValidateCouponDTO struct {
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CreateCouponDTO struct {
	Code         string          `json:"code"`
	DiscountType string          `json:"discount_type"`
	Value        decimal.Decimal `json:"value"`
	MinOrder     decimal.Decimal `json:"min_order"`
	MaxDiscount  decimal.Decimal `json:"max_discount"`
	UsageLimit   int             `json:"usage_limit"`
	ExpiresAt    *time.Time      `json:"expires_at"`
}
