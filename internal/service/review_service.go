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

// RatingStats 商品評分統計
type RatingStats struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type IReviewService interface {
	// AddReview 新增評論
	// 僅限在已完成訂單中購買過該商品的用戶 一人一商品一則
	//
	// 錯誤:
	//   - er.UnauthorizedCode 403: 未購買過該商品
	//   - er.ConflictCode 409: 已評論過
	//   - er.InvalidArgumentCode 460: rating超出1~5
	AddReview(ctx context.Context, userID, productID string, rating int, text string) (*model.Review, error)
	// ListReviews 商品評論分頁 附評分統計
	ListReviews(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int64, *RatingStats, error)
	// UpdateReview 更新自己的評論
	UpdateReview(ctx context.Context, userID, reviewID string, rating int, text string) (*model.Review, error)
	// DeleteReview 刪除自己的評論
	DeleteReview(ctx context.Context, userID, reviewID string) error
	// MarkHelpful 評論有用數+1
	MarkHelpful(ctx context.Context, reviewID string) error
}

type ReviewService struct {
	reviewRepo db.IReviewRepository
}

func NewReviewService(reviewRepo db.IReviewRepository) IReviewService {
	if reflect.ValueOf(reviewRepo).IsNil() {
		panic("review service initialization failed: reviewRepo cannot be nil")
	}
	return &ReviewService{reviewRepo: reviewRepo}
}

func (r *ReviewService) AddReview(ctx context.Context, userID, productID string, rating int, text string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, er.New(er.InvalidArgumentCode, "rating must be between 1 and 5")
	}

	purchased, err := r.reviewRepo.HasUserPurchasedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, er.New(er.UnauthorizedCode, "only customers who purchased this product can review it")
	}

	review := &model.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Text:      text,
	}
	if err := r.reviewRepo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, db.ErrDuplicateReview) {
			return nil, er.New(er.ConflictCode, "you have already reviewed this product")
		}
		return nil, err
	}
	return review, nil
}

func (r *ReviewService) ListReviews(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int64, *RatingStats, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	reviews, total, err := r.reviewRepo.GetReviewsByProduct(ctx, productID, page, pageSize)
	if err != nil {
		return nil, 0, nil, err
	}

	avg, count, err := r.reviewRepo.GetRatingStats(ctx, productID)
	if err != nil {
		return nil, 0, nil, err
	}

	return reviews, total, &RatingStats{Average: avg, Count: count}, nil
}

func (r *ReviewService) UpdateReview(ctx context.Context, userID, reviewID string, rating int, text string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, er.New(er.InvalidArgumentCode, "rating must be between 1 and 5")
	}

	review, err := r.getOwnedReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = rating
	review.Text = text
	if err := r.reviewRepo.UpdateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (r *ReviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	if _, err := r.getOwnedReview(ctx, userID, reviewID); err != nil {
		return err
	}
	return r.reviewRepo.DeleteReview(ctx, reviewID)
}

func (r *ReviewService) MarkHelpful(ctx context.Context, reviewID string) error {
	if err := r.reviewRepo.IncrementHelpful(ctx, reviewID); err != nil {
		if errors.Is(err, db.ErrReviewNotFound) {
			return er.New(er.NotFoundCode, "review not found")
		}
		return err
	}
	return nil
}

func (r *ReviewService) getOwnedReview(ctx context.Context, userID, reviewID string) (*model.Review, error) {
	review, err := r.reviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, db.ErrReviewNotFound) {
			return nil, er.New(er.NotFoundCode, "review not found")
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, er.New(er.UnauthorizedCode, "review belongs to another user")
	}
	return review, nil
}
