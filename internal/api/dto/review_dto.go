package dto

import (
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
)

type CreateReviewDTO struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type ReviewDTO struct {
	ID           string    `json:"id"`
	Rating       int       `json:"rating"`
	Text         string    `json:"text"`
	HelpfulCount int       `json:"helpful_count"`
	ReviewerName string    `json:"reviewer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewReviewDTO(review *model.Review) ReviewDTO {
	out := ReviewDTO{
		ID:           review.ID,
		Rating:       review.Rating,
		Text:         review.Text,
		HelpfulCount: review.HelpfulCount,
		CreatedAt:    review.CreatedAt,
	}
	if review.User != nil {
		out.ReviewerName = review.User.FirstName + " " + review.User.LastName
	}
	return out
}

func NewReviewDTOs(reviews []model.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(reviews))
	for i := range reviews {
		out = append(out, NewReviewDTO(&reviews[i]))
	}
	return out
}
