package db

import (
	"context"
	"errors"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilterParams 商品列表查詢條件
type ProductFilterParams struct {
	CategoryID string
	Brand      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	OnSale     bool
	InStock    bool
	Search     string
	Sort       string
	Page       int
	PageSize   int
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("Sizes").
		Preload("Colors").
		Preload("Category").
		First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// 依條件分頁查詢商品
func (s *ProductRepo) GetProductsFiltered(ctx context.Context, params ProductFilterParams) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Product{}).Where("is_active = ?", true)

	if params.CategoryID != "" {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.Brand != "" {
		query = query.Where("brand = ?", params.Brand)
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", params.MaxPrice)
	}
	if params.OnSale {
		query = query.Where("discount_percent > 0")
	}
	if params.InStock {
		query = query.Where("stock > 0")
	}
	if params.Search != "" {
		query = query.Where("name ILIKE ? OR description ILIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := "created_at DESC"
	switch params.Sort {
	case "price-low":
		orderBy = "price ASC"
	case "price-high":
		orderBy = "price DESC"
	case "best-selling":
		orderBy = "sales_count DESC"
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.
		Preload("Sizes").
		Preload("Colors").
		Preload("Category").
		Order(orderBy).
		Offset(offset).
		Limit(params.PageSize).
		Find(&products).Error

	return products, total, err
}

// Read - 精選商品
func (s *ProductRepo) GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ? AND is_featured = ?", true, true).
		Limit(limit).
		Find(&products).Error
	return products, err
}

// Read - 暢銷商品 依銷量排序
func (s *ProductRepo) GetBestSellers(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ?", true).
		Order("sales_count DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// Read - 同分類相關商品 排除自身
func (s *ProductRepo) GetRelatedProducts(ctx context.Context, productID, categoryID string, limit int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND category_id = ? AND id <> ?", true, categoryID, productID).
		Limit(limit).
		Find(&products).Error
	return products, err
}

// Read - 上架中的品牌清單
func (s *ProductRepo) GetBrands(ctx context.Context) ([]string, error) {
	var brands []string
	err := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_active = ? AND brand <> ''", true).
		Distinct("brand").
		Order("brand").
		Pluck("brand", &brands).Error
	return brands, err
}

// Update - 更新商品
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// Update - 下架商品
func (s *ProductRepo) DeactivateProduct(ctx context.Context, productID string) error {
	result := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductRepo) CreateProductSize(ctx context.Context, size *model.ProductSize) error {
	return s.db.WithContext(ctx).Create(size).Error
}

func (s *ProductRepo) CreateProductColor(ctx context.Context, color *model.ProductColor) error {
	return s.db.WithContext(ctx).Create(color).Error
}

func (s *ProductRepo) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).First(&category, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *ProductRepo) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (s *ProductRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}
