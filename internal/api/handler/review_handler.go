package handler

import (
	"encoding/json"
	"net/http"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api/dto"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/api"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/service"
	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	reviewService service.IReviewService
}

func NewReviewHandler(reviewService service.IReviewService) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	var createDTO dto.CreateReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	review, err := h.reviewService.AddReview(r.Context(), payload.UserID, chi.URLParam(r, "productID"), createDTO.Rating, createDTO.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewReviewDTO(review), nil)
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 10)

	reviews, total, stats, err := h.reviewService.ListReviews(r.Context(), chi.URLParam(r, "productID"), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, map[string]any{
		"reviews": dto.NewReviewDTOs(reviews),
		"stats":   stats,
	}, api.NewPageMeta(page, pageSize, total))
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	var updateDTO dto.CreateReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	review, err := h.reviewService.UpdateReview(r.Context(), payload.UserID, chi.URLParam(r, "id"), updateDTO.Rating, updateDTO.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewReviewDTO(review), nil)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(r.Context(), payload.UserID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil, nil)
}

func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	if err := h.reviewService.MarkHelpful(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil, nil)
}
