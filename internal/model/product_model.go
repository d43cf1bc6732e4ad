package model

import (
	"github.com/shopspring/decimal"
)

type Category struct {
	ID       string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null;type:varchar(100)" json:"name"`
	Slug     string    `gorm:"uniqueIndex;not null;type:varchar(100)" json:"slug"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
	BaseModel
}

type Product struct {
	ID              string          `gorm:"primaryKey;type:uuid" json:"id"`
	Name            string          `gorm:"not null;type:varchar(255)" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Brand           string          `gorm:"type:varchar(100);index" json:"brand"`
	ImageURL        string          `gorm:"type:varchar(500)" json:"image_url"`
	Price           decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	DiscountPercent decimal.Decimal `gorm:"not null;default:0;type:decimal(5,2)" json:"discount_percent"`
	Stock           int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	SalesCount      int             `gorm:"not null;default:0" json:"sales_count"`
	IsActive        bool            `gorm:"not null;default:true" json:"is_active"`
	IsFeatured      bool            `gorm:"not null;default:false" json:"is_featured"`
	CategoryID      string          `gorm:"type:uuid;index" json:"category_id"`
	Category        *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Sizes           []ProductSize   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	Colors          []ProductColor  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"colors"`
	BaseModel
}

// FinalPrice 折扣後單價 計算結果四捨五入到小數兩位
func (p *Product) FinalPrice() decimal.Decimal {
	discount := decimal.NewFromInt(1).Sub(p.DiscountPercent.Div(decimal.NewFromInt(100)))
	return p.Price.Mul(discount).Round(2)
}

// HasDiscount 是否有折扣
func (p *Product) HasDiscount() bool {
	return p.DiscountPercent.IsPositive()
}

// ProductSize 尺寸層級庫存 與商品總庫存獨立控管
type ProductSize struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	ProductID string `gorm:"not null;index:idx_product_size,unique;type:uuid" json:"product_id"`
	Size      string `gorm:"not null;index:idx_product_size,unique;type:varchar(20)" json:"size"`
	Stock     int    `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	BaseModel
}

// ProductColor 顏色變體 庫存在商品層級控管
type ProductColor struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	ProductID string `gorm:"not null;index:idx_product_color,unique;type:uuid" json:"product_id"`
	Color     string `gorm:"not null;index:idx_product_color,unique;type:varchar(50)" json:"color"`
	HexCode   string `gorm:"type:varchar(10)" json:"hex_code"`
	BaseModel
}
