package dto

import (
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/shopspring/decimal"
)

type AddCartItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateCartItemDTO struct {
	Quantity int `json:"quantity"`
}

type CartItemDTO struct {
	ID       string          `json:"id"`
	Product  *ProductDTO     `json:"product,omitempty"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size"`
	Color    string          `json:"color"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartDTO 購物車回應 小計以折扣後價格計算
type CartDTO struct {
	ID       string          `json:"id"`
	Items    []CartItemDTO   `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func NewCartDTO(cart *model.Cart) CartDTO {
	out := CartDTO{
		ID:       cart.ID,
		Items:    make([]CartItemDTO, 0, len(cart.Items)),
		Subtotal: decimal.Zero,
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		itemDTO := CartItemDTO{
			ID:       item.ID,
			Quantity: item.Quantity,
			Size:     item.Size,
			Color:    item.Color,
		}
		if item.Product != nil {
			productDTO := NewProductDTO(item.Product)
			itemDTO.Product = &productDTO
			itemDTO.Subtotal = productDTO.FinalPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			out.Subtotal = out.Subtotal.Add(itemDTO.Subtotal)
		}
		out.Items = append(out.Items, itemDTO)
	}
	return out
}
