package db

import (
	"context"
	"errors"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"gorm.io/gorm"
)

var (
	// ErrReviewNotFound 評論不存在
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview 同一用戶同一商品只能評論一次
	ErrDuplicateReview = errors.New("review already exists for this product")
)

type ReviewRepo struct {
	db *DbDao
}

func NewReviewRepo(db *DbDao) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (s *ReviewRepo) CreateReview(ctx context.Context, review *model.Review) error {
	err := s.db.WithContext(ctx).Create(review).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateReview
	}
	return err
}

// HasUserPurchasedProduct 用戶是否在已完成訂單中買過該商品
func (s *ReviewRepo) HasUserPurchasedProduct(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.status = ?",
			userID, productID, constants.OrderStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// 商品評論分頁 附帶評論者
func (s *ReviewRepo) GetReviewsByProduct(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Review{}).Where("product_id = ?", productID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&reviews).Error

	return reviews, total, err
}

// GetRatingStats 平均分與評論數
func (s *ReviewRepo) GetRatingStats(ctx context.Context, productID string) (float64, int64, error) {
	var avg float64
	var count int64

	err := s.db.WithContext(ctx).Model(&model.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0) as avg_rating, COUNT(*) as review_count").
		Row().
		Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

func (s *ReviewRepo) GetReviewByID(ctx context.Context, reviewID string) (*model.Review, error) {
	var review model.Review
	err := s.db.WithContext(ctx).First(&review, "id = ?", reviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewRepo) UpdateReview(ctx context.Context, review *model.Review) error {
	return s.db.WithContext(ctx).Save(review).Error
}

func (s *ReviewRepo) DeleteReview(ctx context.Context, reviewID string) error {
	return s.db.WithContext(ctx).Delete(&model.Review{}, "id = ?", reviewID).Error
}

// Update - 有用計數遞增
func (s *ReviewRepo) IncrementHelpful(ctx context.Context, reviewID string) error {
	result := s.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", reviewID).
		Update("helpful_count", gorm.Expr("helpful_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
