package model

type Review struct {
	ID           string   `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string   `gorm:"not null;index:idx_user_product_review,unique;type:uuid" json:"user_id"`
	User         *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ProductID    string   `gorm:"not null;index:idx_user_product_review,unique;type:uuid" json:"product_id"`
	Product      *Product `gorm:"foreignKey:ProductID" json:"-"`
	Rating       int      `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Text         string   `gorm:"type:text" json:"text"`
	HelpfulCount int      `gorm:"not null;default:0" json:"helpful_count"`
	BaseModel
}
