package dto

type ReturnLineDTO struct {
	OrderItemID  string `json:"order_item_id"`
	Quantity     int    `json:"quantity"`
	ReturnReason string `json:"return_reason"`
}

type CreateReturnDTO struct {
	OrderID string          `json:"order_id"`
	Reason  string          `json:"reason"`
	Items   []ReturnLineDTO `json:"items"`
}

type AddWishlistItemDTO struct {
	ProductID string `json:"product_id"`
}
