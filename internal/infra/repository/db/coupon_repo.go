package db

import (
	"context"
	"errors"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrCouponNotFound 優惠券不存在
	ErrCouponNotFound = errors.New("coupon not found")
)

type CouponRepo struct {
	db *DbDao
}

func NewCouponRepo(db *DbDao) *CouponRepo {
	return &CouponRepo{db: db}
}

func (s *CouponRepo) CreateCoupon(ctx context.Context, coupon *model.Coupon) error {
	return s.db.WithContext(ctx).Create(coupon).Error
}

func (s *CouponRepo) GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := s.db.WithContext(ctx).First(&coupon, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// HasUserUsedCoupon 用戶是否已使用過該優惠券
func (s *CouponRepo) HasUserUsedCoupon(ctx context.Context, userID, couponID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserCoupon{}).
		Where("user_id = ? AND coupon_id = ? AND used = ?", userID, couponID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkCouponUsed 記錄用戶使用並遞增使用次數 同一交易
func (s *CouponRepo) MarkCouponUsed(ctx context.Context, userID, couponID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userCoupon := model.UserCoupon{
			ID:       uuid.New().String(),
			UserID:   userID,
			CouponID: couponID,
			Used:     true,
		}
		if err := tx.Create(&userCoupon).Error; err != nil {
			return err
		}
		return tx.Model(&model.Coupon{}).
			Where("id = ?", couponID).
			Update("used_count", gorm.Expr("used_count + 1")).Error
	})
}
