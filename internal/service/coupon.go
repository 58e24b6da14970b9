package service

import (
	"context"
	"strings"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/pricing"
	"github.com/denizgunduz/pazar/internal/repository"
)

type couponService struct {
	repo repository.Querier
}

// NewCouponService creates a new CouponService instance.
func NewCouponService(repo repository.Querier) domain.CouponService {
	return &couponService{repo: repo}
}

func (s *couponService) ListActiveCoupons(ctx context.Context) ([]domain.Coupon, error) {
	return s.repo.ListActiveCoupons(ctx)
}

// ValidateCode resolves a code and checks it against the products subtotal.
// Unknown and inactive codes look the same to the caller so codes cannot be
// enumerated by guessing.
func (s *couponService) ValidateCode(ctx context.Context, code string, productsSubtotal float64) (*domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrCouponNotFound
	}

	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	res := pricing.ApplyCoupon(&pricing.Coupon{
		Code:           coupon.Code,
		DiscountAmount: coupon.DiscountAmount,
		MinSpend:       coupon.MinSpend,
		Active:         coupon.IsActive,
	}, productsSubtotal)
	if !res.Valid {
		if res.Reason == pricing.ReasonMinSpend {
			return nil, domain.ErrCouponMinSpend
		}
		return nil, domain.ErrCouponNotFound
	}
	return coupon, nil
}

func (s *couponService) ListAllCoupons(ctx context.Context) ([]domain.Coupon, error) {
	return s.repo.ListCoupons(ctx)
}

func (s *couponService) CreateCoupon(ctx context.Context, input domain.CouponInput) (*domain.Coupon, error) {
	if err := validateCouponInput(input); err != nil {
		return nil, err
	}
	return s.repo.CreateCoupon(ctx, input)
}

func (s *couponService) UpdateCoupon(ctx context.Context, couponID string, input domain.CouponInput) (*domain.Coupon, error) {
	id, err := parseUUID(couponID)
	if err != nil {
		return nil, domain.ErrCouponNotFound
	}
	if err := validateCouponInput(input); err != nil {
		return nil, err
	}
	return s.repo.UpdateCoupon(ctx, id, input)
}

func (s *couponService) DeleteCoupon(ctx context.Context, couponID string) error {
	id, err := parseUUID(couponID)
	if err != nil {
		return domain.ErrCouponNotFound
	}
	return s.repo.DeleteCoupon(ctx, id)
}

func validateCouponInput(input domain.CouponInput) error {
	if strings.TrimSpace(input.Code) == "" {
		return domain.Invalid("coupon.validate", "Coupon code is required")
	}
	if input.DiscountAmount <= 0 {
		return domain.Invalid("coupon.validate", "Discount amount must be greater than 0")
	}
	if input.MinSpend < 0 {
		return domain.Invalid("coupon.validate", "Minimum spend must not be negative")
	}
	return nil
}
