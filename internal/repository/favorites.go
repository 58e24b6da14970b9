package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
)

func (q *Queries) ListFavorites(ctx context.Context, userID pgtype.UUID) ([]domain.Favorite, error) {
	rows, err := q.db.Query(ctx, `
		SELECT f.id, f.user_id, f.product_id, f.created_at,
		       p.id, p.category_id, p.name, p.slug, p.description, p.price, p.discount_price,
		       p.stock, p.image_url, p.images, p.sku, p.is_featured, p.is_active, p.created_at, p.updated_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		var p domain.Product
		if err := rows.Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt,
			&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.DiscountPrice,
			&p.Stock, &p.ImageURL, &p.Images, &p.SKU, &p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		f.Product = &p
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (q *Queries) CreateFavorite(ctx context.Context, userID, productID pgtype.UUID) (*domain.Favorite, error) {
	var f domain.Favorite
	err := q.db.QueryRow(ctx, `
		INSERT INTO favorites (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, product_id, created_at`,
		userID, productID).Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return &f, nil
}

func (q *Queries) DeleteFavorite(ctx context.Context, userID, productID pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
