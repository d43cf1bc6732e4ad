package service

import (
	"context"
	"errors"
	"reflect"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/google/uuid"
)

type AddCartItemParams struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

type ICartService interface {
	// GetCart 取得用戶購物車 含商品明細
	GetCart(ctx context.Context, userID string) (*model.Cart, error)
	// AddItem 加入購物車 同規格(商品+尺寸+顏色)品項合併數量
	// 加入前驗證商品上架中 規格存在 且數量不超過現有庫存
	AddItem(ctx context.Context, userID string, params AddCartItemParams) (*model.Cart, error)
	// UpdateItemQuantity 調整品項數量 僅能操作自己購物車內的品項
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*model.Cart, error)
	// RemoveItem 移除品項
	RemoveItem(ctx context.Context, userID, itemID string) (*model.Cart, error)
	// Clear 清空購物車
	Clear(ctx context.Context, userID string) error
}

type CartService struct {
	cartRepo    db.ICartRepository
	productRepo db.IProductRepository
}

func NewCartService(cartRepo db.ICartRepository, productRepo db.IProductRepository) ICartService {
	if reflect.ValueOf(cartRepo).IsNil() {
		panic("cart service initialization failed: cartRepo cannot be nil")
	}
	if reflect.ValueOf(productRepo).IsNil() {
		panic("cart service initialization failed: productRepo cannot be nil")
	}

	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (c *CartService) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	return c.cartRepo.GetOrCreateCart(ctx, userID)
}

func (c *CartService) AddItem(ctx context.Context, userID string, params AddCartItemParams) (*model.Cart, error) {
	if params.Quantity <= 0 {
		return nil, er.New(er.InvalidArgumentCode, "quantity must be greater than zero")
	}

	product, err := c.productRepo.GetProductByID(ctx, params.ProductID)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, er.New(er.InvalidArgumentCode, "product is not available")
	}

	available := product.Stock
	if params.Size != "" && params.Size != constants.SizeOneSize {
		size := findSize(product, params.Size)
		if size == nil {
			return nil, er.Newf(er.InvalidArgumentCode, "size %s is not available for this product", params.Size)
		}
		available = size.Stock
	}
	if params.Color == "" && len(product.Colors) > 0 {
		return nil, er.New(er.InvalidArgumentCode, "color is required for this product")
	}
	if params.Color != "" && !hasColor(product, params.Color) {
		return nil, er.Newf(er.InvalidArgumentCode, "color %s is not available for this product", params.Color)
	}

	cart, err := c.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 同規格已在車內則合併 校驗合併後數量
	existing, err := c.cartRepo.FindItem(ctx, cart.ID, params.ProductID, params.Size, params.Color)
	switch {
	case err == nil:
		newQuantity := existing.Quantity + params.Quantity
		if newQuantity > available {
			return nil, er.Newf(er.InsufficientStockCode, "only %d left in stock", available)
		}
		if err := c.cartRepo.UpdateItemQuantity(ctx, existing.ID, newQuantity); err != nil {
			return nil, err
		}
	case errors.Is(err, db.ErrCartItemNotFound):
		if params.Quantity > available {
			return nil, er.Newf(er.InsufficientStockCode, "only %d left in stock", available)
		}
		item := &model.CartItem{
			ID:        uuid.New().String(),
			CartID:    cart.ID,
			ProductID: params.ProductID,
			Quantity:  params.Quantity,
			Size:      params.Size,
			Color:     params.Color,
		}
		if err := c.cartRepo.CreateItem(ctx, item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return c.cartRepo.GetOrCreateCart(ctx, userID)
}

func (c *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, er.New(er.InvalidArgumentCode, "quantity must be greater than zero")
	}

	item, err := c.cartRepo.GetItemByID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, db.ErrCartItemNotFound) {
			return nil, er.New(er.NotFoundCode, "cart item not found")
		}
		return nil, err
	}

	product, err := c.productRepo.GetProductByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	available := product.Stock
	if item.Size != "" && item.Size != constants.SizeOneSize {
		if size := findSize(product, item.Size); size != nil {
			available = size.Stock
		}
	}
	if quantity > available {
		return nil, er.Newf(er.InsufficientStockCode, "only %d left in stock", available)
	}

	if err := c.cartRepo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	return c.cartRepo.GetOrCreateCart(ctx, userID)
}

func (c *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*model.Cart, error) {
	if _, err := c.cartRepo.GetItemByID(ctx, userID, itemID); err != nil {
		if errors.Is(err, db.ErrCartItemNotFound) {
			return nil, er.New(er.NotFoundCode, "cart item not found")
		}
		return nil, err
	}
	if err := c.cartRepo.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}
	return c.cartRepo.GetOrCreateCart(ctx, userID)
}

func (c *CartService) Clear(ctx context.Context, userID string) error {
	return c.cartRepo.ClearByUser(ctx, userID)
}

func findSize(product *model.Product, size string) *model.ProductSize {
	for i := range product.Sizes {
		if product.Sizes[i].Size == size {
			return &product.Sizes[i]
		}
	}
	return nil
}

func hasColor(product *model.Product, color string) bool {
	for i := range product.Colors {
		if product.Colors[i].Color == color {
			return true
		}
	}
	return false
}
