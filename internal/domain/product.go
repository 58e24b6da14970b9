package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrProductNotFound  = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrCategoryNotFound = &Error{Code: ENOTFOUND, Message: "Category not found"}
	ErrDuplicateSlug    = &Error{Code: ECONFLICT, Message: "Slug already in use"}
)

// Category represents a storefront product category.
type Category struct {
	ID           pgtype.UUID
	Name         string
	Slug         string
	ImageURL     string
	Icon         string
	DisplayOrder int32
	IsActive     bool
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

// Product represents a catalog product.
// DiscountPrice, when set and below Price, is the per-item sale price the
// storefront displays; pricing always keeps Price as the original basis.
type Product struct {
	ID            pgtype.UUID
	CategoryID    pgtype.UUID
	Name          string
	Slug          string
	Description   string
	Price         float64
	DiscountPrice *float64
	Stock         int32
	ImageURL      string
	Images        []string
	SKU           string
	IsFeatured    bool
	IsActive      bool
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

// ProductFilter narrows storefront product listings.
type ProductFilter struct {
	CategoryID *pgtype.UUID
	Featured   *bool
	Search     string
	Limit      int32
}

// ProductInput carries admin create/update fields for a product.
type ProductInput struct {
	CategoryID    pgtype.UUID
	Name          string
	Slug          string
	Description   string
	Price         float64
	DiscountPrice *float64
	Stock         int32
	ImageURL      string
	Images        []string
	SKU           string
	IsFeatured    bool
	IsActive      bool
}

// CategoryInput carries admin create/update fields for a category.
type CategoryInput struct {
	Name         string
	Slug         string
	ImageURL     string
	Icon         string
	DisplayOrder int32
	IsActive     bool
}

// ProductService provides business logic for catalog products.
type ProductService interface {
	// ListProducts returns active products matching the filter.
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, productID string) (*Product, error)

	// Admin operations. Inactive products are visible here.
	ListAllProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, productID string, input ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// CategoryService provides business logic for categories.
type CategoryService interface {
	// ListCategories returns active categories ordered by display order.
	ListCategories(ctx context.Context) ([]Category, error)

	// Admin operations.
	ListAllCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, categoryID string, input CategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}
