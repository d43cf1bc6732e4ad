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

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
	}
}

func (c *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	cart, err := c.cartService.GetCart(r.Context(), payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewCartDTO(cart), nil)
}

func (c *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	var addDTO dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&addDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	cart, err := c.cartService.AddItem(r.Context(), payload.UserID, service.AddCartItemParams{
		ProductID: addDTO.ProductID,
		Quantity:  addDTO.Quantity,
		Size:      addDTO.Size,
		Color:     addDTO.Color,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewCartDTO(cart), nil)
}

func (c *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	var updateDTO dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	cart, err := c.cartService.UpdateItemQuantity(r.Context(), payload.UserID, chi.URLParam(r, "itemID"), updateDTO.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewCartDTO(cart), nil)
}

func (c *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	cart, err := c.cartService.RemoveItem(r.Context(), payload.UserID, chi.URLParam(r, "itemID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewCartDTO(cart), nil)
}

func (c *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	if err := c.cartService.Clear(r.Context(), payload.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil, nil)
}
