package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
)

const reviewSelect = `
	SELECT r.id, r.product_id, r.user_id, r.rating, r.comment, r.is_verified, r.is_approved,
	       r.created_at, r.updated_at, u.full_name
	FROM reviews r
	JOIN users u ON u.id = r.user_id`

func (q *Queries) listReviews(ctx context.Context, sql string, args ...interface{}) ([]domain.Review, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Comment, &r.IsVerified, &r.IsApproved,
			&r.CreatedAt, &r.UpdatedAt, &r.UserName); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (q *Queries) ListApprovedReviews(ctx context.Context, productID pgtype.UUID) ([]domain.Review, error) {
	return q.listReviews(ctx, reviewSelect+` WHERE r.product_id = $1 AND r.is_approved ORDER BY r.created_at DESC`, productID)
}

func (q *Queries) ListPendingReviews(ctx context.Context) ([]domain.Review, error) {
	return q.listReviews(ctx, reviewSelect+` WHERE NOT r.is_approved ORDER BY r.created_at`)
}

func (q *Queries) GetProductRating(ctx context.Context, productID pgtype.UUID) (*domain.ProductRating, error) {
	var rating domain.ProductRating
	err := q.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews WHERE product_id = $1 AND is_approved`, productID).
		Scan(&rating.Average, &rating.Count)
	if err != nil {
		return nil, fmt.Errorf("get product rating: %w", err)
	}
	return &rating, nil
}

func (q *Queries) GetReviewByUserAndProduct(ctx context.Context, userID, productID pgtype.UUID) (*domain.Review, error) {
	reviews, err := q.listReviews(ctx, reviewSelect+` WHERE r.user_id = $1 AND r.product_id = $2`, userID, productID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, domain.ErrReviewNotFound
	}
	return &reviews[0], nil
}

// HasDeliveredProduct reports whether the user has a delivered order
// containing the product. Used to mark reviews as verified purchases.
func (q *Queries) HasDeliveredProduct(ctx context.Context, userID, productID pgtype.UUID) (bool, error) {
	var delivered bool
	err := q.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM orders o
			JOIN order_items oi ON oi.order_id = o.id
			WHERE o.user_id = $1 AND oi.product_id = $2 AND o.status = 'DELIVERED'
		)`, userID, productID).Scan(&delivered)
	if err != nil {
		return false, fmt.Errorf("check delivered product: %w", err)
	}
	return delivered, nil
}

func (q *Queries) CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	var r domain.Review
	err := q.db.QueryRow(ctx, `
		INSERT INTO reviews (product_id, user_id, rating, comment, is_verified, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, product_id, user_id, rating, comment, is_verified, is_approved, created_at, updated_at`,
		review.ProductID, review.UserID, review.Rating, review.Comment, review.IsVerified, review.IsApproved).
		Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Comment, &r.IsVerified, &r.IsApproved, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateReview
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	return &r, nil
}

func (q *Queries) SetReviewApproval(ctx context.Context, id pgtype.UUID, approved bool) (*domain.Review, error) {
	var r domain.Review
	err := q.db.QueryRow(ctx, `
		UPDATE reviews SET is_approved = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, product_id, user_id, rating, comment, is_verified, is_approved, created_at, updated_at`,
		id, approved).
		Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Comment, &r.IsVerified, &r.IsApproved, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("set review approval: %w", err)
	}
	return &r, nil
}

func (q *Queries) DeleteReview(ctx context.Context, id pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
