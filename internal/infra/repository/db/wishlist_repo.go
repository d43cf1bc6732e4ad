package db

import (
	"context"
	"errors"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"gorm.io/gorm"
)

var (
	// ErrWishlistItemExists 商品已在收藏清單
	ErrWishlistItemExists = errors.New("product already in wishlist")
	// ErrWishlistItemNotFound 收藏不存在
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)

type WishlistRepo struct {
	db *DbDao
}

func NewWishlistRepo(db *DbDao) *WishlistRepo {
	return &WishlistRepo{db: db}
}

func (s *WishlistRepo) GetWishlistByUser(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := s.db.WithContext(ctx).
		Preload("Product.Sizes").
		Preload("Product.Colors").
		Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *WishlistRepo) AddItem(ctx context.Context, item *model.WishlistItem) error {
	err := s.db.WithContext(ctx).Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrWishlistItemExists
	}
	return err
}

func (s *WishlistRepo) RemoveItem(ctx context.Context, userID, productID string) error {
	result := s.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}
