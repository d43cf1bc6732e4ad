package handler

import (
	"net/http"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api/dto"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/api"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/service"
	"github.com/go-chi/chi/v5"
)

type ShippingHandler struct {
	shippingService service.IShippingService
}

func NewShippingHandler(shippingService service.IShippingService) *ShippingHandler {
	if shippingService == nil {
		panic("shippingService cannot be nil")
	}
	return &ShippingHandler{
		shippingService: shippingService,
	}
}

func (h *ShippingHandler) Track(w http.ResponseWriter, r *http.Request) {
	info, err := h.shippingService.Track(r.Context(), chi.URLParam(r, "trackingNumber"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, info, nil)
}

func (h *ShippingHandler) Carriers(w http.ResponseWriter, r *http.Request) {
	api.SuccessJSON(w, h.shippingService.GetCarriers(), nil)
}

func (h *ShippingHandler) Ship(w http.ResponseWriter, r *http.Request) {
	order, err := h.shippingService.Ship(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewOrderDTO(order), nil)
}
