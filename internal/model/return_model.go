package model

type ReturnRequest struct {
	ID      string       `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID string       `gorm:"not null;index;type:uuid" json:"order_id"`
	Order   *Order       `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	UserID  string       `gorm:"not null;index;type:uuid" json:"user_id"`
	Reason  string       `gorm:"type:text" json:"reason"`
	Status  string       `gorm:"not null;default:PENDING;type:varchar(20)" json:"status"`
	Items   []ReturnItem `gorm:"foreignKey:ReturnRequestID;constraint:OnDelete:CASCADE" json:"items"`
	BaseModel
}

type ReturnItem struct {
	ID              string     `gorm:"primaryKey;type:uuid" json:"id"`
	ReturnRequestID string     `gorm:"not null;index;type:uuid" json:"return_request_id"`
	OrderItemID     string     `gorm:"not null;type:uuid" json:"order_item_id"`
	OrderItem       *OrderItem `gorm:"foreignKey:OrderItemID" json:"order_item,omitempty"`
	Quantity        int        `gorm:"not null" json:"quantity"`
	ReturnReason    string     `gorm:"type:text" json:"return_reason"`
	BaseModel
}
