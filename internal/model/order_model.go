package model

import (
	"github.com/shopspring/decimal"
)

type Order struct {
	ID             string          `gorm:"primaryKey;type:uuid" json:"id"`
	UserID         string          `gorm:"not null;index;type:uuid" json:"user_id"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total          decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"total"`
	Address        string          `gorm:"not null;type:text" json:"address"`
	Status         string          `gorm:"not null;default:PENDING;type:varchar(20);index" json:"status"`
	OrderCode      string          `gorm:"uniqueIndex;not null;type:varchar(8)" json:"order_code"`
	TrackingNumber string          `gorm:"index;type:varchar(30)" json:"tracking_number"`
	PaymentMethod  string          `gorm:"not null;default:ONLINE;type:varchar(30)" json:"payment_method"`
	BaseModel
}

// OrderItem 下單時價格凍結 建立後不可變
type OrderItem struct {
	ID        string          `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID   string          `gorm:"not null;index;type:uuid" json:"order_id"`
	ProductID string          `gorm:"not null;type:uuid" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	Size      string          `gorm:"type:varchar(20)" json:"size"`
	Color     string          `gorm:"type:varchar(50)" json:"color"`
	BaseModel
}
