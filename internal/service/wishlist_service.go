package service

import (
	"context"
	"errors"
	"reflect"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/google/uuid"
)

type IWishlistService interface {
	GetWishlist(ctx context.Context, userID string) ([]model.WishlistItem, error)
	// AddItem 加入收藏 同商品重複加入回409
	AddItem(ctx context.Context, userID, productID string) error
	RemoveItem(ctx context.Context, userID, productID string) error
}

type WishlistService struct {
	wishlistRepo db.IWishlistRepository
	productRepo  db.IProductRepository
}

func NewWishlistService(wishlistRepo db.IWishlistRepository, productRepo db.IProductRepository) IWishlistService {
	if reflect.ValueOf(wishlistRepo).IsNil() {
		panic("wishlist service initialization failed: wishlistRepo cannot be nil")
	}
	if reflect.ValueOf(productRepo).IsNil() {
		panic("wishlist service initialization failed: productRepo cannot be nil")
	}

	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (w *WishlistService) GetWishlist(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	return w.wishlistRepo.GetWishlistByUser(ctx, userID)
}

func (w *WishlistService) AddItem(ctx context.Context, userID, productID string) error {
	if _, err := w.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return er.New(er.NotFoundCode, "product not found")
		}
		return err
	}

	item := &model.WishlistItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
	}
	if err := w.wishlistRepo.AddItem(ctx, item); err != nil {
		if errors.Is(err, db.ErrWishlistItemExists) {
			return er.New(er.ConflictCode, "product already in wishlist")
		}
		return err
	}
	return nil
}

func (w *WishlistService) RemoveItem(ctx context.Context, userID, productID string) error {
	if err := w.wishlistRepo.RemoveItem(ctx, userID, productID); err != nil {
		if errors.Is(err, db.ErrWishlistItemNotFound) {
			return er.New(er.NotFoundCode, "wishlist item not found")
		}
		return err
	}
	return nil
}
