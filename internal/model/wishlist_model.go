package model

type WishlistItem struct {
	ID        string   `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string   `gorm:"not null;index:idx_user_wishlist,unique;type:uuid" json:"user_id"`
	ProductID string   `gorm:"not null;index:idx_user_wishlist,unique;type:uuid" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	BaseModel
}
