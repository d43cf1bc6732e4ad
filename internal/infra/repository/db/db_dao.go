package db

import (
	"context"
	"fmt"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Category{},
		&model.Product{},
		&model.ProductSize{},
		&model.ProductColor{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Coupon{},
		&model.UserCoupon{},
		&model.Review{},
		&model.ReturnRequest{},
		&model.ReturnItem{},
		&model.WishlistItem{},
	)
}

// ExecTx 在單一交易內執行fn 整體執行時間與鎖等待時間皆有上限
// timeout到期時ctx取消 交易rollback
// lockWait透過SET LOCAL lock_timeout限制row lock等待
func (d *DbDao) ExecTx(ctx context.Context, timeout, lockWait time.Duration, fn func(tx *gorm.DB) error) error {
	txCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return d.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		if lockWait > 0 {
			if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", lockWait.Milliseconds())).Error; err != nil {
				return err
			}
		}
		return fn(tx)
	})
}
