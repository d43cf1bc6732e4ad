package handler

import (
	"encoding/json"
	"net/http"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api/dto"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/api"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
	}
}

func (p *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := db.ProductFilterParams{
		CategoryID: q.Get("category_id"),
		Brand:      q.Get("brand"),
		OnSale:     q.Get("on_sale") == "true",
		InStock:    q.Get("in_stock") == "true",
		Search:     q.Get("search"),
		Sort:       q.Get("sort"),
		Page:       queryInt(r, "page", 1),
		PageSize:   queryInt(r, "page_size", 20),
	}
	if v := q.Get("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			params.MinPrice = &d
		}
	}
	if v := q.Get("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			params.MaxPrice = &d
		}
	}

	products, total, err := p.productService.ListProducts(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.NewProductDTOs(products), api.NewPageMeta(params.Page, params.PageSize, total))
}

func (p *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := p.productService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewProductDTO(product), nil)
}

func (p *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := p.productService.GetFeaturedProducts(r.Context(), queryInt(r, "limit", 8))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewProductDTOs(products), nil)
}

func (p *ProductHandler) BestSellers(w http.ResponseWriter, r *http.Request) {
	products, err := p.productService.GetBestSellers(r.Context(), queryInt(r, "limit", 8))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewProductDTOs(products), nil)
}

func (p *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	products, err := p.productService.GetRelatedProducts(r.Context(), chi.URLParam(r, "id"), queryInt(r, "limit", 4))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewProductDTOs(products), nil)
}

func (p *ProductHandler) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := p.productService.GetBrands(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, brands, nil)
}

func (p *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.productService.GetCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, categories, nil)
}

func (p *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	product := &model.Product{
		Name:            createDTO.Name,
		Description:     createDTO.Description,
		Brand:           createDTO.Brand,
		ImageURL:        createDTO.ImageURL,
		Price:           createDTO.Price,
		DiscountPercent: createDTO.DiscountPercent,
		Stock:           createDTO.Stock,
		IsActive:        true,
		IsFeatured:      createDTO.IsFeatured,
		CategoryID:      createDTO.CategoryID,
	}
	for _, size := range createDTO.Sizes {
		product.Sizes = append(product.Sizes, model.ProductSize{Size: size.Size, Stock: size.Stock})
	}
	for _, color := range createDTO.Colors {
		product.Colors = append(product.Colors, model.ProductColor{Color: color.Color, HexCode: color.HexCode})
	}

	created, err := p.productService.CreateProduct(r.Context(), product)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewProductDTO(created), nil)
}

func (p *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var updateDTO dto.UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	product := &model.Product{
		ID:              chi.URLParam(r, "id"),
		Name:            updateDTO.Name,
		Description:     updateDTO.Description,
		Brand:           updateDTO.Brand,
		ImageURL:        updateDTO.ImageURL,
		Price:           updateDTO.Price,
		DiscountPercent: updateDTO.DiscountPercent,
		Stock:           updateDTO.Stock,
		IsActive:        updateDTO.IsActive,
		IsFeatured:      updateDTO.IsFeatured,
		CategoryID:      updateDTO.CategoryID,
	}

	updated, err := p.productService.UpdateProduct(r.Context(), product)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewProductDTO(updated), nil)
}

func (p *ProductHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := p.productService.DeactivateProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil, nil)
}

func (p *ProductHandler) AddSize(w http.ResponseWriter, r *http.Request) {
	var sizeDTO dto.AddProductSizeDTO
	if err := json.NewDecoder(r.Body).Decode(&sizeDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	size, err := p.productService.AddSize(r.Context(), chi.URLParam(r, "id"), sizeDTO.Size, sizeDTO.Stock)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, size, nil)
}

func (p *ProductHandler) AddColor(w http.ResponseWriter, r *http.Request) {
	var colorDTO dto.AddProductColorDTO
	if err := json.NewDecoder(r.Body).Decode(&colorDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	color, err := p.productService.AddColor(r.Context(), chi.URLParam(r, "id"), colorDTO.Color, colorDTO.HexCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, color, nil)
}

func (p *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var categoryDTO dto.CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&categoryDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	category, err := p.productService.CreateCategory(r.Context(), &model.Category{
		Name: categoryDTO.Name,
		Slug: categoryDTO.Slug,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, category, nil)
}
