package model

type Cart struct {
	ID     string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string     `gorm:"uniqueIndex;not null;type:uuid" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	BaseModel
}

type CartItem struct {
	ID        string   `gorm:"primaryKey;type:uuid" json:"id"`
	CartID    string   `gorm:"not null;index;type:uuid" json:"cart_id"`
	ProductID string   `gorm:"not null;type:uuid" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Size      string   `gorm:"type:varchar(20)" json:"size"`
	Color     string   `gorm:"type:varchar(50)" json:"color"`
	BaseModel
}
