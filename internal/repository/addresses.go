package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
)

const addressColumns = `id, user_id, full_name, phone, city, address, is_default, created_at, updated_at`

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.City, &a.Address, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (q *Queries) ListAddresses(ctx context.Context, userID pgtype.UUID) ([]domain.Address, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+addressColumns+` FROM user_addresses
		WHERE user_id = $1 ORDER BY is_default DESC, updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.City, &a.Address, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (q *Queries) GetAddress(ctx context.Context, userID, addressID pgtype.UUID) (*domain.Address, error) {
	a, err := scanAddress(q.db.QueryRow(ctx, `
		SELECT `+addressColumns+` FROM user_addresses WHERE user_id = $1 AND id = $2`, userID, addressID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

// GetLatestAddress prefers the default address, then the most recently
// updated one. Returns ErrAddressNotFound when the user has none.
func (q *Queries) GetLatestAddress(ctx context.Context, userID pgtype.UUID) (*domain.Address, error) {
	a, err := scanAddress(q.db.QueryRow(ctx, `
		SELECT `+addressColumns+` FROM user_addresses
		WHERE user_id = $1 ORDER BY is_default DESC, updated_at DESC LIMIT 1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("get latest address: %w", err)
	}
	return a, nil
}

func (q *Queries) CreateAddress(ctx context.Context, userID pgtype.UUID, input domain.AddressInput) (*domain.Address, error) {
	a, err := scanAddress(q.db.QueryRow(ctx, `
		INSERT INTO user_addresses (user_id, full_name, phone, city, address, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+addressColumns,
		userID, input.FullName, input.Phone, input.City, input.Address, input.IsDefault))
	if err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return a, nil
}

func (q *Queries) UpdateAddress(ctx context.Context, userID, addressID pgtype.UUID, input domain.AddressInput) (*domain.Address, error) {
	a, err := scanAddress(q.db.QueryRow(ctx, `
		UPDATE user_addresses
		SET full_name = $3, phone = $4, city = $5, address = $6, is_default = $7, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+addressColumns,
		userID, addressID, input.FullName, input.Phone, input.City, input.Address, input.IsDefault))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("update address: %w", err)
	}
	return a, nil
}

func (q *Queries) DeleteAddress(ctx context.Context, userID, addressID pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM user_addresses WHERE user_id = $1 AND id = $2`, userID, addressID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func (q *Queries) ClearDefaultAddress(ctx context.Context, userID pgtype.UUID) error {
	if _, err := q.db.Exec(ctx, `UPDATE user_addresses SET is_default = false WHERE user_id = $1 AND is_default`, userID); err != nil {
		return fmt.Errorf("clear default address: %w", err)
	}
	return nil
}

func (q *Queries) SetDefaultAddress(ctx context.Context, userID, addressID pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE user_addresses SET is_default = true, updated_at = now()
		WHERE user_id = $1 AND id = $2`, userID, addressID)
	if err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}
