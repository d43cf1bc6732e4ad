package model

import "time"

type User struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	FirstName   string `gorm:"not null;type:varchar(100)" json:"first_name"`
	LastName    string `gorm:"not null;type:varchar(100)" json:"last_name"`
	Email       string `gorm:"uniqueIndex;not null;type:varchar(255)" json:"email"`
	Password    string `gorm:"not null;type:varchar(255)" json:"-"`
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`
	Role        string `gorm:"not null;default:USER;type:varchar(20)" json:"role"`
	IsVerified  bool   `gorm:"not null;default:false" json:"is_verified"`
	BaseModel
}

// RefreshToken 只儲存bcrypt hash 原始token不落地
type RefreshToken struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string    `gorm:"not null;index;type:uuid" json:"user_id"`
	TokenHash    string    `gorm:"not null;type:varchar(255)" json:"-"`
	IP           string    `gorm:"type:varchar(64)" json:"ip"`
	Device       string    `gorm:"type:varchar(255)" json:"device"`
	Revoked      bool      `gorm:"not null;default:false" json:"revoked"`
	ReplacedByID *string   `gorm:"type:uuid" json:"replaced_by_id,omitempty"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	BaseModel
}
