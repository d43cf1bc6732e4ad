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

type ReturnHandler struct {
	returnService service.IReturnService
}

func NewReturnHandler(returnService service.IReturnService) *ReturnHandler {
	if returnService == nil {
		panic("returnService cannot be nil")
	}
	return &ReturnHandler{
		returnService: returnService,
	}
}

func (h *ReturnHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	var createDTO dto.CreateReturnDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	items := make([]service.ReturnLineParams, 0, len(createDTO.Items))
	for _, line := range createDTO.Items {
		items = append(items, service.ReturnLineParams{
			OrderItemID:  line.OrderItemID,
			Quantity:     line.Quantity,
			ReturnReason: line.ReturnReason,
		})
	}

	request, err := h.returnService.CreateReturn(r.Context(), payload.UserID, service.CreateReturnParams{
		OrderID: createDTO.OrderID,
		Reason:  createDTO.Reason,
		Items:   items,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, request, nil)
}

func (h *ReturnHandler) List(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 10)

	returns, total, err := h.returnService.ListReturns(r.Context(), payload.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, returns, api.NewPageMeta(page, pageSize, total))
}

func (h *ReturnHandler) Get(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	request, err := h.returnService.GetReturn(r.Context(), payload.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, request, nil)
}

func (h *ReturnHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if err := h.returnService.ApproveReturn(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil, nil)
}

func (h *ReturnHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.returnService.RejectReturn(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil, nil)
}
