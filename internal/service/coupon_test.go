package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizgunduz/pazar/internal/domain"
)

func (f *fakeStore) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	if f.coupon != nil && strings.EqualFold(f.coupon.Code, code) {
		cp := *f.coupon
		return &cp, nil
	}
	return nil, domain.ErrCouponNotFound
}

func TestCouponValidateCode(t *testing.T) {
	store := newFakeStore()
	store.coupon = &domain.Coupon{
		Code:           "WELCOME50",
		DiscountAmount: 50,
		MinSpend:       100,
		IsActive:       true,
	}
	svc := NewCouponService(store)

	t.Run("subtotal above minimum", func(t *testing.T) {
		coupon, err := svc.ValidateCode(context.Background(), "WELCOME50", 150)
		require.NoError(t, err)
		assert.Equal(t, "WELCOME50", coupon.Code)
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		_, err := svc.ValidateCode(context.Background(), "WELCOME50", 100)
		assert.NoError(t, err)
	})

	t.Run("just below minimum", func(t *testing.T) {
		_, err := svc.ValidateCode(context.Background(), "WELCOME50", 99.99)
		assert.ErrorIs(t, err, domain.ErrCouponMinSpend)
	})

	t.Run("case insensitive lookup", func(t *testing.T) {
		_, err := svc.ValidateCode(context.Background(), "welcome50", 150)
		assert.NoError(t, err)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.ValidateCode(context.Background(), "NOPE", 150)
		assert.ErrorIs(t, err, domain.ErrCouponNotFound)
	})

	t.Run("blank code", func(t *testing.T) {
		_, err := svc.ValidateCode(context.Background(), "  ", 150)
		assert.ErrorIs(t, err, domain.ErrCouponNotFound)
	})
}

func TestCouponValidateCode_InactiveLooksUnknown(t *testing.T) {
	store := newFakeStore()
	store.coupon = &domain.Coupon{
		Code:           "OLD10",
		DiscountAmount: 10,
		IsActive:       false,
	}
	svc := NewCouponService(store)

	_, err := svc.ValidateCode(context.Background(), "OLD10", 500)
	assert.ErrorIs(t, err, domain.ErrCouponNotFound)
}
