package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID           string          `gorm:"primaryKey;type:uuid" json:"id"`
	Code         string          `gorm:"uniqueIndex;not null;type:varchar(50)" json:"code"`
	DiscountType string          `gorm:"not null;type:varchar(20)" json:"discount_type"`
	Value        decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"value"`
	MinOrder     decimal.Decimal `gorm:"type:decimal(12,2)" json:"min_order"`
	MaxDiscount  decimal.Decimal `gorm:"type:decimal(12,2)" json:"max_discount"`
	UsageLimit   int             `gorm:"not null;default:0" json:"usage_limit"`
	UsedCount    int             `gorm:"not null;default:0" json:"used_count"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt    *time.Time      `json:"expires_at"`
	BaseModel
}

// UserCoupon 紀錄使用者已兌換的優惠券 防止重複使用
type UserCoupon struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string `gorm:"not null;index:idx_user_coupon,unique;type:uuid" json:"user_id"`
	CouponID string `gorm:"not null;index:idx_user_coupon,unique;type:uuid" json:"coupon_id"`
	Used     bool   `gorm:"not null;default:false" json:"used"`
	BaseModel
}
