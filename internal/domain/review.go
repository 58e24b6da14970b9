package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrReviewNotFound  = &Error{Code: ENOTFOUND, Message: "Review not found"}
	ErrDuplicateReview = &Error{Code: ECONFLICT, Message: "You have already reviewed this product"}
	ErrInvalidRating   = &Error{Code: EINVALID, Message: "Rating must be between 1 and 5"}
)

// Review is a customer product review. Reviews are created unapproved and
// only approved reviews are shown on the storefront.
type Review struct {
	ID         pgtype.UUID
	ProductID  pgtype.UUID
	UserID     pgtype.UUID
	Rating     int32
	Comment    string
	IsVerified bool
	IsApproved bool
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz

	UserName string
}

// ProductRating aggregates approved review stats for a product.
type ProductRating struct {
	Average float64
	Count   int64
}

// ReviewService provides review submission and moderation.
type ReviewService interface {
	// ListProductReviews returns approved reviews for a product, newest first.
	ListProductReviews(ctx context.Context, productID string) ([]Review, *ProductRating, error)

	// CreateReview submits a review. The verified flag is set when the user
	// has a delivered order containing the product.
	CreateReview(ctx context.Context, userID, productID string, rating int32, comment string) (*Review, error)

	// Admin moderation.
	ListPendingReviews(ctx context.Context) ([]Review, error)
	SetApproval(ctx context.Context, reviewID string, approved bool) (*Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

// Favorite links a user to a product they favorited.
type Favorite struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	ProductID pgtype.UUID
	CreatedAt pgtype.Timestamptz

	Product *Product
}

var ErrFavoriteNotFound = &Error{Code: ENOTFOUND, Message: "Favorite not found"}

// FavoriteService provides favorite toggling and listing.
type FavoriteService interface {
	ListFavorites(ctx context.Context, userID string) ([]Favorite, error)
	AddFavorite(ctx context.Context, userID, productID string) (*Favorite, error)
	RemoveFavorite(ctx context.Context, userID, productID string) error
}
