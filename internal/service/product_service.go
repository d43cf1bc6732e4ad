package service

import (
	"context"
	"errors"
	"reflect"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/redis_repo"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type IProductCache interface {
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}

type IProductService interface {
	// GetProduct 商品詳情 先讀快取 miss才查DB並回填
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	// ListProducts 依條件分頁查詢 回傳商品與總筆數
	ListProducts(ctx context.Context, params db.ProductFilterParams) ([]model.Product, int64, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error)
	GetBestSellers(ctx context.Context, limit int) ([]model.Product, error)
	GetRelatedProducts(ctx context.Context, productID string, limit int) ([]model.Product, error)
	GetBrands(ctx context.Context) ([]string, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	// CreateProduct 建立商品 含sizes與colors (admin)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	// UpdateProduct 更新商品並使快取失效 (admin)
	UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	// DeactivateProduct 下架商品並使快取失效 (admin)
	DeactivateProduct(ctx context.Context, productID string) error
	// AddSize 新增尺寸庫存 (admin)
	AddSize(ctx context.Context, productID, size string, stock int) (*model.ProductSize, error)
	// AddColor 新增顏色變體 (admin)
	AddColor(ctx context.Context, productID, color, hexCode string) (*model.ProductColor, error)
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
}

type ProductService struct {
	productRepo db.IProductRepository
	cache       IProductCache
	logger      *zerolog.Logger
}

func NewProductService(productRepo db.IProductRepository, cache IProductCache, logger *zerolog.Logger) IProductService {
	if reflect.ValueOf(productRepo).IsNil() {
		panic("product service initialization failed: productRepo cannot be nil")
	}

	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (p *ProductService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	if p.cache != nil {
		cached, err := p.cache.GetProduct(ctx, productID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis_repo.ErrCacheMiss) && p.logger != nil {
			// redis故障不影響讀取 降級走DB
			p.logger.Warn().Err(err).Str("product_id", productID).Msg("product cache read failed")
		}
	}

	product, err := p.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "product not found")
		}
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.SetProduct(ctx, product); err != nil && p.logger != nil {
			p.logger.Warn().Err(err).Str("product_id", productID).Msg("product cache write failed")
		}
	}
	return product, nil
}

func (p *ProductService) ListProducts(ctx context.Context, params db.ProductFilterParams) ([]model.Product, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return p.productRepo.GetProductsFiltered(ctx, params)
}

func (p *ProductService) GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error) {
	if limit < 1 || limit > 50 {
		limit = 8
	}
	return p.productRepo.GetFeaturedProducts(ctx, limit)
}

func (p *ProductService) GetBestSellers(ctx context.Context, limit int) ([]model.Product, error) {
	if limit < 1 || limit > 50 {
		limit = 8
	}
	return p.productRepo.GetBestSellers(ctx, limit)
}

func (p *ProductService) GetRelatedProducts(ctx context.Context, productID string, limit int) ([]model.Product, error) {
	if limit < 1 || limit > 50 {
		limit = 4
	}
	product, err := p.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return p.productRepo.GetRelatedProducts(ctx, productID, product.CategoryID, limit)
}

func (p *ProductService) GetBrands(ctx context.Context) ([]string, error) {
	return p.productRepo.GetBrands(ctx)
}

func (p *ProductService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return p.productRepo.GetAllCategories(ctx)
}

func (p *ProductService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.Name == "" {
		return nil, er.New(er.InvalidArgumentCode, "product name is required")
	}
	if product.Price.IsNegative() {
		return nil, er.New(er.InvalidArgumentCode, "price cannot be negative")
	}
	if product.CategoryID == "" {
		return nil, er.New(er.InvalidArgumentCode, "category is required")
	}

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Sizes {
		if product.Sizes[i].ID == "" {
			product.Sizes[i].ID = uuid.New().String()
		}
		product.Sizes[i].ProductID = product.ID
	}
	for i := range product.Colors {
		if product.Colors[i].ID == "" {
			product.Colors[i].ID = uuid.New().String()
		}
		product.Colors[i].ProductID = product.ID
	}

	if err := p.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *ProductService) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.ID == "" {
		return nil, er.New(er.InvalidArgumentCode, "product id is required")
	}
	if _, err := p.productRepo.GetProductByID(ctx, product.ID); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "product not found")
		}
		return nil, err
	}

	if err := p.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	p.invalidate(ctx, product.ID)
	return p.productRepo.GetProductByID(ctx, product.ID)
}

func (p *ProductService) DeactivateProduct(ctx context.Context, productID string) error {
	if err := p.productRepo.DeactivateProduct(ctx, productID); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return er.New(er.NotFoundCode, "product not found")
		}
		return err
	}
	p.invalidate(ctx, productID)
	return nil
}

func (p *ProductService) AddSize(ctx context.Context, productID, size string, stock int) (*model.ProductSize, error) {
	if size == "" {
		return nil, er.New(er.InvalidArgumentCode, "size is required")
	}
	if stock < 0 {
		return nil, er.New(er.InvalidArgumentCode, "stock cannot be negative")
	}
	if _, err := p.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "product not found")
		}
		return nil, err
	}

	productSize := &model.ProductSize{
		ID:        uuid.New().String(),
		ProductID: productID,
		Size:      size,
		Stock:     stock,
	}
	if err := p.productRepo.CreateProductSize(ctx, productSize); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, er.Newf(er.ConflictCode, "size %s already exists for this product", size)
		}
		return nil, err
	}
	p.invalidate(ctx, productID)
	return productSize, nil
}

func (p *ProductService) AddColor(ctx context.Context, productID, color, hexCode string) (*model.ProductColor, error) {
	if color == "" {
		return nil, er.New(er.InvalidArgumentCode, "color is required")
	}
	if _, err := p.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "product not found")
		}
		return nil, err
	}

	productColor := &model.ProductColor{
		ID:        uuid.New().String(),
		ProductID: productID,
		Color:     color,
		HexCode:   hexCode,
	}
	if err := p.productRepo.CreateProductColor(ctx, productColor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, er.Newf(er.ConflictCode, "color %s already exists for this product", color)
		}
		return nil, err
	}
	p.invalidate(ctx, productID)
	return productColor, nil
}

func (p *ProductService) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.Name == "" || category.Slug == "" {
		return nil, er.New(er.InvalidArgumentCode, "category name and slug are required")
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := p.productRepo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, er.New(er.ConflictCode, "category slug already exists")
		}
		return nil, err
	}
	return category, nil
}

// 寫後失效 下次讀取回填最新資料
func (p *ProductService) invalidate(ctx context.Context, productID string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.DeleteProduct(ctx, productID); err != nil && p.logger != nil {
		p.logger.Warn().Err(err).Str("product_id", productID).Msg("product cache invalidation failed")
	}
}
