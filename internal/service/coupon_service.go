package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CouponQuote 驗證通過的優惠券與其對當前小計的折抵金額
type CouponQuote struct {
	Coupon   *model.Coupon   `json:"coupon"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

type ICouponService interface {
	// Validate 驗證優惠券並試算折抵
	// 檢查: 存在且啟用 未過期 未達使用上限 該用戶未用過 小計達低消
	//
	// 錯誤:
	//   - er.NotFoundCode 404: 優惠券不存在
	//   - er.InvalidArgumentCode 460: 停用 過期 額滿 已用過 未達低消
	Validate(ctx context.Context, userID, code string, subtotal decimal.Decimal) (*CouponQuote, error)
	// Redeem 下單成功後核銷 記錄用戶使用並遞增使用次數
	Redeem(ctx context.Context, userID, couponID string) error
	// CreateCoupon 建立優惠券 (admin)
	CreateCoupon(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error)
}

type CouponService struct {
	couponRepo db.ICouponRepository
}

func NewCouponService(couponRepo db.ICouponRepository) ICouponService {
	if reflect.ValueOf(couponRepo).IsNil() {
		panic("coupon service initialization failed: couponRepo cannot be nil")
	}
	return &CouponService{couponRepo: couponRepo}
}

func (c *CouponService) Validate(ctx context.Context, userID, code string, subtotal decimal.Decimal) (*CouponQuote, error) {
	coupon, err := c.couponRepo.GetCouponByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, db.ErrCouponNotFound) {
			return nil, er.New(er.NotFoundCode, "coupon not found")
		}
		return nil, err
	}

	if !coupon.IsActive {
		return nil, er.New(er.InvalidArgumentCode, "coupon is no longer active")
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return nil, er.New(er.InvalidArgumentCode, "coupon has expired")
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, er.New(er.InvalidArgumentCode, "coupon usage limit reached")
	}

	used, err := c.couponRepo.HasUserUsedCoupon(ctx, userID, coupon.ID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, er.New(er.InvalidArgumentCode, "coupon already used")
	}

	if coupon.MinOrder.IsPositive() && subtotal.LessThan(coupon.MinOrder) {
		return nil, er.Newf(er.InvalidArgumentCode, "order total must be at least %s to use this coupon", coupon.MinOrder.StringFixed(2))
	}

	discount := ComputeDiscount(coupon, subtotal)
	return &CouponQuote{
		Coupon:   coupon,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}, nil
}

func (c *CouponService) Redeem(ctx context.Context, userID, couponID string) error {
	return c.couponRepo.MarkCouponUsed(ctx, userID, couponID)
}

func (c *CouponService) CreateCoupon(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		return nil, er.New(er.InvalidArgumentCode, "coupon code is required")
	}
	if coupon.DiscountType != constants.CouponTypePercentage && coupon.DiscountType != constants.CouponTypeFixed {
		return nil, er.New(er.InvalidArgumentCode, "discount type must be PERCENTAGE or FIXED")
	}
	if !coupon.Value.IsPositive() {
		return nil, er.New(er.InvalidArgumentCode, "coupon value must be positive")
	}
	if coupon.DiscountType == constants.CouponTypePercentage && coupon.Value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, er.New(er.InvalidArgumentCode, "percentage value cannot exceed 100")
	}

	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	if err := c.couponRepo.CreateCoupon(ctx, coupon); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, er.New(er.ConflictCode, "coupon code already exists")
		}
		return nil, err
	}
	return coupon, nil
}

// ComputeDiscount 折抵金額
// PERCENTAGE受MaxDiscount封頂 FIXED不超過小計 結果四捨五入到小數兩位
func ComputeDiscount(coupon *model.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch coupon.DiscountType {
	case constants.CouponTypePercentage:
		discount = subtotal.Mul(coupon.Value).Div(decimal.NewFromInt(100)).Round(2)
		if coupon.MaxDiscount.IsPositive() && discount.GreaterThan(coupon.MaxDiscount) {
			discount = coupon.MaxDiscount
		}
	case constants.CouponTypeFixed:
		discount = coupon.Value
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return discount
}
