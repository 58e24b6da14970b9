// Package admin contains the JSON handlers for the back-office API.
// Every route in this package sits behind RequireAdmin.
package admin

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// ProductHandler manages the catalog from the back office.
type ProductHandler struct {
	products domain.ProductService
}

func NewProductHandler(products domain.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	CategoryID    string   `json:"category_id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price"`
	Stock         int32    `json:"stock"`
	ImageURL      string   `json:"image_url"`
	Images        []string `json:"images"`
	SKU           string   `json:"sku"`
	IsFeatured    bool     `json:"is_featured"`
	IsActive      bool     `json:"is_active"`
}

func (req productRequest) input() (domain.ProductInput, error) {
	input := domain.ProductInput{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Stock:         req.Stock,
		ImageURL:      req.ImageURL,
		Images:        req.Images,
		SKU:           req.SKU,
		IsFeatured:    req.IsFeatured,
		IsActive:      req.IsActive,
	}
	if req.CategoryID != "" {
		var id pgtype.UUID
		if err := id.Scan(req.CategoryID); err != nil {
			return input, domain.Invalid("admin.product", "category_id is not a valid ID")
		}
		input.CategoryID = id
	}
	return input, nil
}

// List handles GET /api/admin/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListAllProducts(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewProductViews(products))
}

// Create handles POST /api/admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	input, err := req.input()
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	product, err := h.products.CreateProduct(r.Context(), input)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, handler.NewProductView(*product))
}

// Update handles PUT /api/admin/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	input, err := req.input()
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), r.PathValue("id"), input)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewProductView(*product))
}

// Delete handles DELETE /api/admin/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.NoContent(w)
}
