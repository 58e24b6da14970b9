package service

import (
	"context"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/repository"
)

type favoriteService struct {
	repo repository.Querier
}

// NewFavoriteService creates a new FavoriteService instance.
func NewFavoriteService(repo repository.Querier) domain.FavoriteService {
	return &favoriteService{repo: repo}
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListFavorites(ctx, uid)
}

func (s *favoriteService) AddFavorite(ctx context.Context, userID, productID string) (*domain.Favorite, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	pid, err := parseUUID(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	if _, err := s.repo.GetProductByID(ctx, pid); err != nil {
		return nil, err
	}
	return s.repo.CreateFavorite(ctx, uid, pid)
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, userID, productID string) error {
	uid, err := parseUUID(userID)
	if err != nil {
		return err
	}
	pid, err := parseUUID(productID)
	if err != nil {
		return domain.ErrFavoriteNotFound
	}
	return s.repo.DeleteFavorite(ctx, uid, pid)
}
