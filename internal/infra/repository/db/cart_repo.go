package db

import (
	"context"
	"errors"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrCartItemNotFound 購物車品項不存在
	ErrCartItemNotFound = errors.New("cart item not found")
)

type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

// GetOrCreateCart 取得用戶購物車 不存在則建立空車
func (s *CartRepo) GetOrCreateCart(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.WithContext(ctx).
		Preload("Items.Product.Sizes").
		Preload("Items.Product.Colors").
		Preload("Items.Product.Category").
		First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = model.Cart{
			ID:     uuid.New().String(),
			UserID: userID,
		}
		if err := s.db.WithContext(ctx).Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindItem 以(商品, 尺寸, 顏色)找出同規格品項 用於合併數量
func (s *CartRepo) FindItem(ctx context.Context, cartID, productID, size, color string) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).
		First(&item, "cart_id = ? AND product_id = ? AND size = ? AND color = ?", cartID, productID, size, color).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartRepo) GetItemByID(ctx context.Context, userID, itemID string) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartRepo) CreateItem(ctx context.Context, item *model.CartItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *CartRepo) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	result := s.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Delete - 移除單一品項
func (s *CartRepo) DeleteItem(ctx context.Context, itemID string) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&model.CartItem{}, "id = ?", itemID).Error
}

// Delete - 清空購物車
func (s *CartRepo) ClearByUser(ctx context.Context, userID string) error {
	var cart model.Cart
	err := s.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Unscoped().Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error
}
