package dto

import (
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/shopspring/decimal"
)

type OrderLineDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type PlaceOrderDTO struct {
	Items         []OrderLineDTO `json:"items"`
	Address       string         `json:"address"`
	PaymentMethod string         `json:"payment_method"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}

type OrderItemDTO struct {
	ID       string          `json:"id"`
	Product  *ProductDTO     `json:"product,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Size     string          `json:"size"`
	Color    string          `json:"color"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type OrderDTO struct {
	ID             string          `json:"id"`
	OrderCode      string          `json:"order_code"`
	Items          []OrderItemDTO  `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Address        string          `json:"address"`
	Status         string          `json:"status"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	PaymentMethod  string          `json:"payment_method"`
	CreatedAt      time.Time       `json:"created_at"`
}

func NewOrderDTO(order *model.Order) OrderDTO {
	out := OrderDTO{
		ID:             order.ID,
		OrderCode:      order.OrderCode,
		Items:          make([]OrderItemDTO, 0, len(order.Items)),
		Total:          order.Total,
		Address:        order.Address,
		Status:         order.Status,
		TrackingNumber: order.TrackingNumber,
		PaymentMethod:  order.PaymentMethod,
		CreatedAt:      order.CreatedAt,
	}

	for i := range order.Items {
		item := &order.Items[i]
		itemDTO := OrderItemDTO{
			ID:       item.ID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Size:     item.Size,
			Color:    item.Color,
			Subtotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
		if item.Product != nil {
			productDTO := NewProductDTO(item.Product)
			itemDTO.Product = &productDTO
		}
		out.Items = append(out.Items, itemDTO)
	}
	return out
}

func NewOrderDTOs(orders []model.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderDTO(&orders[i]))
	}
	return out
}
