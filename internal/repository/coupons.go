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

const couponColumns = `id, code, description, discount_amount, min_spend, is_active, created_at, updated_at`

func scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var c domain.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountAmount, &c.MinSpend, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *Queries) ListActiveCoupons(ctx context.Context) ([]domain.Coupon, error) {
	return q.listCoupons(ctx, `SELECT `+couponColumns+` FROM coupons WHERE is_active ORDER BY discount_amount DESC`)
}

func (q *Queries) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	return q.listCoupons(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
}

func (q *Queries) listCoupons(ctx context.Context, sql string) ([]domain.Coupon, error) {
	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountAmount, &c.MinSpend, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

// GetCouponByCode matches case-insensitively so user-typed codes resolve
// regardless of casing.
func (q *Queries) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	c, err := scanCoupon(q.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE upper(code) = upper($1)`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, fmt.Errorf("get coupon by code: %w", err)
	}
	return c, nil
}

func (q *Queries) GetCouponByID(ctx context.Context, id pgtype.UUID) (*domain.Coupon, error) {
	c, err := scanCoupon(q.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return c, nil
}

func (q *Queries) CreateCoupon(ctx context.Context, input domain.CouponInput) (*domain.Coupon, error) {
	c, err := scanCoupon(q.db.QueryRow(ctx, `
		INSERT INTO coupons (code, description, discount_amount, min_spend, is_active)
		VALUES (upper($1), $2, $3, $4, $5)
		RETURNING `+couponColumns,
		input.Code, input.Description, input.DiscountAmount, input.MinSpend, input.IsActive))
	if err != nil {
		return nil, wrapCouponConflict(err, "create coupon")
	}
	return c, nil
}

func (q *Queries) UpdateCoupon(ctx context.Context, id pgtype.UUID, input domain.CouponInput) (*domain.Coupon, error) {
	c, err := scanCoupon(q.db.QueryRow(ctx, `
		UPDATE coupons
		SET code = upper($2), description = $3, discount_amount = $4, min_spend = $5, is_active = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+couponColumns,
		id, input.Code, input.Description, input.DiscountAmount, input.MinSpend, input.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, wrapCouponConflict(err, "update coupon")
	}
	return c, nil
}

func (q *Queries) DeleteCoupon(ctx context.Context, id pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCouponNotFound
	}
	return nil
}

func wrapCouponConflict(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &domain.Error{Code: domain.ECONFLICT, Message: "Coupon code already exists", Op: op}
	}
	return fmt.Errorf("%s: %w", op, err)
}
