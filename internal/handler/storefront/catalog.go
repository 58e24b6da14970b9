package storefront

import (
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// CatalogHandler serves the public category and product listings.
type CatalogHandler struct {
	products   domain.ProductService
	categories domain.CategoryService
	reviews    domain.ReviewService
}

func NewCatalogHandler(products domain.ProductService, categories domain.CategoryService, reviews domain.ReviewService) *CatalogHandler {
	return &CatalogHandler{
		products:   products,
		categories: categories,
		reviews:    reviews,
	}
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewCategoryViews(categories))
}

// ListProducts handles GET /api/products
//
// Query parameters: category_id, featured, search, limit.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{Search: q.Get("search")}

	if raw := q.Get("category_id"); raw != "" {
		var id pgtype.UUID
		if err := id.Scan(raw); err != nil {
			handler.ErrorResponse(w, r, domain.Invalid("catalog.list", "category_id is not a valid ID"))
			return
		}
		filter.CategoryID = &id
	}
	if raw := q.Get("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 1 {
			handler.ErrorResponse(w, r, domain.Invalid("catalog.list", "limit must be a positive number"))
			return
		}
		filter.Limit = int32(n)
	}

	products, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewProductViews(products))
}

type productDetailResponse struct {
	handler.ProductView
	Rating      float64              `json:"rating"`
	ReviewCount int64                `json:"review_count"`
	Reviews     []handler.ReviewView `json:"reviews"`
}

// GetProduct handles GET /api/products/{id}
//
// The detail view bundles the approved reviews and the aggregate rating so
// the product screen loads with one request.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")

	product, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	reviews, rating, err := h.reviews.ListProductReviews(r.Context(), productID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, productDetailResponse{
		ProductView: handler.NewProductView(*product),
		Rating:      rating.Average,
		ReviewCount: rating.Count,
		Reviews:     handler.NewReviewViews(reviews),
	})
}
