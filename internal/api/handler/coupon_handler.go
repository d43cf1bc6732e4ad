package handler

import (
	"encoding/json"
	"net/http"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api/dto"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/api"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/service"
)

type CouponHandler struct {
	couponService service.ICouponService
}

func NewCouponHandler(couponService service.ICouponService) *CouponHandler {
	if couponService == nil {
		panic("couponService cannot be nil")
	}
	return &CouponHandler{
		couponService: couponService,
	}
}

func (c *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	var validateDTO dto.ValidateCouponDTO
	if err := json.NewDecoder(r.Body).Decode(&validateDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	quote, err := c.couponService.Validate(r.Context(), payload.UserID, validateDTO.Code, validateDTO.Subtotal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, quote, nil)
}

func (c *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateCouponDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	coupon, err := c.couponService.CreateCoupon(r.Context(), &model.Coupon{
		Code:         createDTO.Code,
		DiscountType: createDTO.DiscountType,
		Value:        createDTO.Value,
		MinOrder:     createDTO.MinOrder,
		MaxDiscount:  createDTO.MaxDiscount,
		UsageLimit:   createDTO.UsageLimit,
		IsActive:     true,
		ExpiresAt:    createDTO.ExpiresAt,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, coupon, nil)
}
