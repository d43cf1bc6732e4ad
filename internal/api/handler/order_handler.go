package handler

import (
	"encoding/json"
	"net/http"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api/dto"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/api"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

func (o *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	var placeDTO dto.PlaceOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&placeDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	items := make([]db.OrderLineParams, 0, len(placeDTO.Items))
	for _, line := range placeDTO.Items {
		items = append(items, db.OrderLineParams{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
		})
	}

	order, err := o.orderService.PlaceOrder(r.Context(), db.PlaceOrderParams{
		UserID:        payload.UserID,
		Items:         items,
		Address:       placeDTO.Address,
		PaymentMethod: placeDTO.PaymentMethod,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.NewOrderDTO(order), nil)
}

func (o *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	order, err := o.orderService.GetOrder(r.Context(), chi.URLParam(r, "id"), payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewOrderDTO(order), nil)
}

func (o *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	params := db.OrderListParams{
		UserID:   payload.UserID,
		Status:   r.URL.Query().Get("status"),
		Sort:     r.URL.Query().Get("sort"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 10),
	}

	orders, total, err := o.orderService.ListOrders(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewOrderDTOs(orders), api.NewPageMeta(params.Page, params.PageSize, total))
}

func (o *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	stats, err := o.orderService.GetOrderStats(r.Context(), payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, stats, nil)
}

func (o *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	if err := o.orderService.CancelOrder(r.Context(), chi.URLParam(r, "id"), payload.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil, nil)
}

func (o *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var statusDTO dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	if err := o.orderService.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), statusDTO.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil, nil)
}
