package handler

import (
	"net/http"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api/dto"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/api"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/service"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	paymentService service.IPaymentService
}

func NewPaymentHandler(paymentService service.IPaymentService) *PaymentHandler {
	if paymentService == nil {
		panic("paymentService cannot be nil")
	}
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	intent, err := h.paymentService.CreateIntent(r.Context(), payload.UserID, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, intent, nil)
}

func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	order, err := h.paymentService.Confirm(r.Context(), payload.UserID, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewOrderDTO(order), nil)
}

func (h *PaymentHandler) CashOnDelivery(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	order, err := h.paymentService.SetCashOnDelivery(r.Context(), payload.UserID, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewOrderDTO(order), nil)
}
