package dto

import (
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/shopspring/decimal"
)

// ProductDTO 商品回應 附折扣後價格
type ProductDTO struct {
	*model.Product
	FinalPrice  decimal.Decimal `json:"final_price"`
	HasDiscount bool            `json:"has_discount"`
}

func NewProductDTO(p *model.Product) ProductDTO {
	return ProductDTO{
		Product:     p,
		FinalPrice:  p.FinalPrice(),
		HasDiscount: p.HasDiscount(),
	}
}

func NewProductDTOs(products []model.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, NewProductDTO(&products[i]))
	}
	return out
}

type ProductSizeDTO struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

type ProductColorDTO struct {
	Color   string `json:"color"`
	HexCode string `json:"hex_code"`
}

type CreateProductDTO struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Brand           string            `json:"brand"`
	ImageURL        string            `json:"image_url"`
	Price           decimal.Decimal   `json:"price"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	Stock           int               `json:"stock"`
	IsFeatured      bool              `json:"is_featured"`
	CategoryID      string            `json:"category_id"`
	Sizes           []ProductSizeDTO  `json:"sizes"`
	Colors          []ProductColorDTO `json:"colors"`
}

type UpdateProductDTO struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Brand           string          `json:"brand"`
	ImageURL        string          `json:"image_url"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Stock           int             `json:"stock"`
	IsActive        bool            `json:"is_active"`
	IsFeatured      bool            `json:"is_featured"`
	CategoryID      string          `json:"category_id"`
}

type AddProductSizeDTO struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

type AddProductColorDTO struct {
	Color   string `json:"color"`
	HexCode string `json:"hex_code"`
}

type CreateCategoryDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
