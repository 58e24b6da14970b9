package service

import (
	"context"
	"strings"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/repository"
)

type reviewService struct {
	repo repository.Querier
}

// NewReviewService creates a new ReviewService instance.
func NewReviewService(repo repository.Querier) domain.ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) ListProductReviews(ctx context.Context, productID string) ([]domain.Review, *domain.ProductRating, error) {
	pid, err := parseUUID(productID)
	if err != nil {
		return nil, nil, domain.ErrProductNotFound
	}
	reviews, err := s.repo.ListApprovedReviews(ctx, pid)
	if err != nil {
		return nil, nil, err
	}
	rating, err := s.repo.GetProductRating(ctx, pid)
	if err != nil {
		return nil, nil, err
	}
	return reviews, rating, nil
}

func (s *reviewService) CreateReview(ctx context.Context, userID, productID string, rating int32, comment string) (*domain.Review, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	pid, err := parseUUID(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	if _, err := s.repo.GetProductByID(ctx, pid); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetReviewByUserAndProduct(ctx, uid, pid); err == nil {
		return nil, domain.ErrDuplicateReview
	} else if !domain.IsCode(err, domain.ENOTFOUND) {
		return nil, err
	}

	verified, err := s.repo.HasDeliveredProduct(ctx, uid, pid)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateReview(ctx, &domain.Review{
		ProductID:  pid,
		UserID:     uid,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		IsVerified: verified,
		IsApproved: false,
	})
}

func (s *reviewService) ListPendingReviews(ctx context.Context) ([]domain.Review, error) {
	return s.repo.ListPendingReviews(ctx)
}

func (s *reviewService) SetApproval(ctx context.Context, reviewID string, approved bool) (*domain.Review, error) {
	id, err := parseUUID(reviewID)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}
	return s.repo.SetReviewApproval(ctx, id, approved)
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	id, err := parseUUID(reviewID)
	if err != nil {
		return domain.ErrReviewNotFound
	}
	return s.repo.DeleteReview(ctx, id)
}
