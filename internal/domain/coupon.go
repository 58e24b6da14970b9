package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrCouponNotFound = &Error{Code: ENOTFOUND, Message: "Invalid or expired coupon code"}
	ErrCouponMinSpend = &Error{Code: EUNPROCESSABLE, Message: "Cart total is below the coupon minimum spend"}
)

// Coupon is a user-entered code granting a flat discount subject to a
// minimum-spend gate.
type Coupon struct {
	ID             pgtype.UUID
	Code           string
	Description    string
	DiscountAmount float64
	MinSpend       float64
	IsActive       bool
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

// CouponInput carries admin create/update fields for a coupon.
type CouponInput struct {
	Code           string
	Description    string
	DiscountAmount float64
	MinSpend       float64
	IsActive       bool
}

// CouponService provides coupon lookup and validation.
type CouponService interface {
	// ListActiveCoupons returns active coupons ordered by discount descending.
	ListActiveCoupons(ctx context.Context) ([]Coupon, error)

	// ValidateCode resolves a code and checks it against the given products
	// subtotal. Returns ErrCouponNotFound for unknown or inactive codes and
	// ErrCouponMinSpend when the subtotal is below the coupon's minimum
	// (boundary inclusive: a subtotal equal to MinSpend qualifies).
	ValidateCode(ctx context.Context, code string, productsSubtotal float64) (*Coupon, error)

	// Admin operations.
	ListAllCoupons(ctx context.Context) ([]Coupon, error)
	CreateCoupon(ctx context.Context, input CouponInput) (*Coupon, error)
	UpdateCoupon(ctx context.Context, couponID string, input CouponInput) (*Coupon, error)
	DeleteCoupon(ctx context.Context, couponID string) error
}
