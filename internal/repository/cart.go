package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
)

const cartItemSelect = `
	SELECT ci.id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
	       p.name, p.price, p.discount_price, p.stock, p.image_url
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id`

func scanCartItem(row pgx.Row) (*domain.CartItem, error) {
	var it domain.CartItem
	err := row.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
		&it.ProductName, &it.UnitPrice, &it.DiscountPrice, &it.Stock, &it.ImageURL)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (q *Queries) ListCartItems(ctx context.Context, userID pgtype.UUID) ([]domain.CartItem, error) {
	rows, err := q.db.Query(ctx, cartItemSelect+` WHERE ci.user_id = $1 ORDER BY ci.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
			&it.ProductName, &it.UnitPrice, &it.DiscountPrice, &it.Stock, &it.ImageURL); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (q *Queries) GetCartItem(ctx context.Context, userID, itemID pgtype.UUID) (*domain.CartItem, error) {
	it, err := scanCartItem(q.db.QueryRow(ctx, cartItemSelect+` WHERE ci.user_id = $1 AND ci.id = $2`, userID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return it, nil
}

func (q *Queries) UpsertCartItem(ctx context.Context, userID, productID pgtype.UUID, quantity int32) error {
	if _, err := q.db.Exec(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()`,
		userID, productID, quantity); err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (q *Queries) SetCartItemQuantity(ctx context.Context, userID, itemID pgtype.UUID, quantity int32) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE cart_items SET quantity = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2`,
		userID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("set cart quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (q *Queries) DeleteCartItem(ctx context.Context, userID, itemID pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = $2`, userID, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (q *Queries) ClearCart(ctx context.Context, userID pgtype.UUID) error {
	if _, err := q.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
