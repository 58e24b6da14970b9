package service

import (
	"context"
	"strings"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/repository"
)

type categoryService struct {
	repo repository.Querier
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(repo repository.Querier) domain.CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListActiveCategories(ctx)
}

func (s *categoryService) ListAllCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *categoryService) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}
	return s.repo.CreateCategory(ctx, input)
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, input domain.CategoryInput) (*domain.Category, error) {
	id, err := parseUUID(categoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}
	return s.repo.UpdateCategory(ctx, id, input)
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	id, err := parseUUID(categoryID)
	if err != nil {
		return domain.ErrCategoryNotFound
	}
	return s.repo.DeleteCategory(ctx, id)
}

func validateCategoryInput(input domain.CategoryInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domain.Invalid("category.validate", "Category name is required")
	}
	if strings.TrimSpace(input.Slug) == "" {
		return domain.Invalid("category.validate", "Category slug is required")
	}
	return nil
}
