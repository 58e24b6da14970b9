package service

import (
	"context"
	"strings"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/repository"
)

type productService struct {
	repo repository.Querier
}

// NewProductService creates a new ProductService instance.
func NewProductService(repo repository.Querier) domain.ProductService {
	return &productService{repo: repo}
}

func (s *productService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.ListActiveProducts(ctx, filter)
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	id, err := parseUUID(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	return s.repo.GetProductByID(ctx, id)
}

func (s *productService) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *productService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	return s.repo.CreateProduct(ctx, input)
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, input domain.ProductInput) (*domain.Product, error) {
	id, err := parseUUID(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	return s.repo.UpdateProduct(ctx, id, input)
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	id, err := parseUUID(productID)
	if err != nil {
		return domain.ErrProductNotFound
	}
	return s.repo.DeleteProduct(ctx, id)
}

func validateProductInput(input domain.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domain.Invalid("product.validate", "Product name is required")
	}
	if strings.TrimSpace(input.Slug) == "" {
		return domain.Invalid("product.validate", "Product slug is required")
	}
	if input.Price < 0 {
		return domain.Invalid("product.validate", "Price must not be negative")
	}
	if input.DiscountPrice != nil && *input.DiscountPrice < 0 {
		return domain.Invalid("product.validate", "Discount price must not be negative")
	}
	if input.Stock < 0 {
		return domain.Invalid("product.validate", "Stock must not be negative")
	}
	return nil
}
