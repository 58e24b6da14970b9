package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/repository"
)

type cartService struct {
	repo repository.Querier
}

// NewCartService creates a new CartService instance.
func NewCartService(repo repository.Querier) domain.CartService {
	return &cartService{repo: repo}
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*domain.CartSummary, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, uid)
}

func (s *cartService) AddItem(ctx context.Context, userID, productID string, quantity int32) (*domain.CartSummary, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	pid, err := parseUUID(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.repo.GetProductByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrProductNotFound
	}
	if product.Stock < quantity {
		return nil, domain.ErrInsufficientStock
	}

	if err := s.repo.UpsertCartItem(ctx, uid, pid, quantity); err != nil {
		return nil, err
	}
	return s.summary(ctx, uid)
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int32) (*domain.CartSummary, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	iid, err := parseUUID(itemID)
	if err != nil {
		return nil, domain.ErrCartItemNotFound
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	item, err := s.repo.GetCartItem(ctx, uid, iid)
	if err != nil {
		return nil, err
	}
	if item.Stock < quantity {
		return nil, domain.ErrInsufficientStock
	}

	if err := s.repo.SetCartItemQuantity(ctx, uid, iid, quantity); err != nil {
		return nil, err
	}
	return s.summary(ctx, uid)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.CartSummary, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	iid, err := parseUUID(itemID)
	if err != nil {
		return nil, domain.ErrCartItemNotFound
	}
	if err := s.repo.DeleteCartItem(ctx, uid, iid); err != nil {
		return nil, err
	}
	return s.summary(ctx, uid)
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	uid, err := parseUUID(userID)
	if err != nil {
		return err
	}
	return s.repo.ClearCart(ctx, uid)
}

func (s *cartService) summary(ctx context.Context, uid pgtype.UUID) (*domain.CartSummary, error) {
	items, err := s.repo.ListCartItems(ctx, uid)
	if err != nil {
		return nil, err
	}
	count := 0
	for _, it := range items {
		count += int(it.Quantity)
	}
	return &domain.CartSummary{Items: items, ItemCount: count}, nil
}
