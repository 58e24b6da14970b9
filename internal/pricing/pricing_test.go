package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizgunduz/pazar/internal/pricing"
)

func fptr(v float64) *float64 { return &v }

var testConfig = pricing.Config{
	ShippingFee:             49.90,
	FreeShippingThreshold:   750,
	CODFee:                  29.90,
	TransferDiscountPercent: 5,
}

func TestValidLines_ExcludesOutOfStock(t *testing.T) {
	lines := []pricing.Line{
		{ProductID: "a", UnitPrice: 100, Quantity: 2, Stock: 5},
		{ProductID: "b", UnitPrice: 200, DiscountUnitPrice: fptr(150), Quantity: 1, Stock: 0},
	}

	valid := pricing.ValidLines(lines)

	require.Len(t, valid, 1)
	assert.Equal(t, "a", valid[0].ProductID)
}

func TestQuote_OutOfStockLineDoesNotContribute(t *testing.T) {
	// Second line is out of stock: only the first prices.
	lines := []pricing.Line{
		{ProductID: "a", UnitPrice: 100, Quantity: 2, Stock: 5},
		{ProductID: "b", UnitPrice: 200, DiscountUnitPrice: fptr(150), Quantity: 1, Stock: 0},
	}

	b, err := pricing.Quote(lines, testConfig, nil, pricing.PaymentTransfer, pricing.StepCart)

	require.NoError(t, err)
	assert.Equal(t, 200.0, b.GrossTotal)
	assert.Equal(t, 0.0, b.ProductDiscountTotal)
	assert.Equal(t, 200.0, b.ProductsSubtotal)
}

func TestGrossTotal_UsesOriginalPrice(t *testing.T) {
	lines := []pricing.Line{
		{UnitPrice: 100, DiscountUnitPrice: fptr(80), Quantity: 3, Stock: 10},
	}

	assert.Equal(t, 300.0, pricing.GrossTotal(lines))
	assert.InDelta(t, 60.0, pricing.ProductDiscountTotal(lines), 1e-9)
}

func TestProductDiscountTotal_ZeroWithoutEffectiveDiscount(t *testing.T) {
	lines := []pricing.Line{
		{UnitPrice: 100, Quantity: 2, Stock: 5},
		// Discount price equal to unit price is not a discount.
		{UnitPrice: 50, DiscountUnitPrice: fptr(50), Quantity: 1, Stock: 5},
		// Discount price above unit price is ignored.
		{UnitPrice: 50, DiscountUnitPrice: fptr(60), Quantity: 1, Stock: 5},
	}

	assert.Equal(t, 0.0, pricing.ProductDiscountTotal(lines))
}

func TestQuote_GrossNeverBelowSubtotal(t *testing.T) {
	lines := []pricing.Line{
		{UnitPrice: 100, DiscountUnitPrice: fptr(70), Quantity: 2, Stock: 9},
		{UnitPrice: 19.90, Quantity: 4, Stock: 2},
	}

	b, err := pricing.Quote(lines, testConfig, nil, pricing.PaymentTransfer, pricing.StepCart)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, b.GrossTotal, b.ProductsSubtotal)
}

func TestQuote_FreeShippingBoundary(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     float64
		freeShipping bool
	}{
		{"above threshold", 800, true},
		{"exactly at threshold", 750, true},
		{"a cent below", 749.99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []pricing.Line{{UnitPrice: tt.subtotal, Quantity: 1, Stock: 1}}

			b, err := pricing.Quote(lines, testConfig, nil, pricing.PaymentTransfer, pricing.StepCart)

			require.NoError(t, err)
			assert.Equal(t, tt.freeShipping, b.FreeShipping)
			if tt.freeShipping {
				assert.Equal(t, 0.0, b.ShippingCost)
			} else {
				assert.Equal(t, testConfig.ShippingFee, b.ShippingCost)
			}
		})
	}
}

func TestApplyCoupon(t *testing.T) {
	coupon := &pricing.Coupon{Code: "WELCOME", DiscountAmount: 50, MinSpend: 100, Active: true}

	t.Run("min spend boundary is inclusive", func(t *testing.T) {
		res := pricing.ApplyCoupon(coupon, 100)

		assert.True(t, res.Valid)
		assert.Equal(t, 50.0, res.Amount)
	})

	t.Run("below min spend", func(t *testing.T) {
		res := pricing.ApplyCoupon(coupon, 99.99)

		assert.False(t, res.Valid)
		assert.Equal(t, pricing.ReasonMinSpend, res.Reason)
	})

	t.Run("inactive coupon", func(t *testing.T) {
		inactive := &pricing.Coupon{Code: "OLD", DiscountAmount: 50, Active: false}

		res := pricing.ApplyCoupon(inactive, 500)

		assert.False(t, res.Valid)
		assert.Equal(t, pricing.ReasonInactive, res.Reason)
	})

	t.Run("nil coupon is an invalid code", func(t *testing.T) {
		res := pricing.ApplyCoupon(nil, 500)

		assert.False(t, res.Valid)
		assert.Equal(t, pricing.ReasonInactive, res.Reason)
	})

	t.Run("no min spend always applies", func(t *testing.T) {
		free := &pricing.Coupon{Code: "ANY", DiscountAmount: 10, MinSpend: 0, Active: true}

		res := pricing.ApplyCoupon(free, 0.01)

		assert.True(t, res.Valid)
	})

	t.Run("amount capped at subtotal", func(t *testing.T) {
		big := &pricing.Coupon{Code: "BIG", DiscountAmount: 500, Active: true}

		res := pricing.ApplyCoupon(big, 120)

		assert.True(t, res.Valid)
		assert.Equal(t, 120.0, res.Amount)
	})

	t.Run("negative amount grants nothing", func(t *testing.T) {
		bad := &pricing.Coupon{Code: "NEG", DiscountAmount: -25, Active: true}

		res := pricing.ApplyCoupon(bad, 120)

		assert.True(t, res.Valid)
		assert.Zero(t, res.Amount)
	})
}

func TestQuote_CouponExample(t *testing.T) {
	// Coupon {50, minSpend 100} with subtotal 100 applies fully.
	lines := []pricing.Line{{UnitPrice: 100, Quantity: 1, Stock: 3}}
	coupon := &pricing.Coupon{Code: "W50", DiscountAmount: 50, MinSpend: 100, Active: true}

	b, err := pricing.Quote(lines, testConfig, coupon, pricing.PaymentTransfer, pricing.StepCart)

	require.NoError(t, err)
	assert.Equal(t, 50.0, b.CouponDiscount)
	assert.Equal(t, 50.0+testConfig.ShippingFee, b.FinalTotal)
}

func TestQuote_SurchargeGatedByStep(t *testing.T) {
	lines := []pricing.Line{{UnitPrice: 200, Quantity: 1, Stock: 1}}

	for _, step := range []pricing.Step{pricing.StepCart, pricing.StepDelivery} {
		transfer, err := pricing.Quote(lines, testConfig, nil, pricing.PaymentTransfer, step)
		require.NoError(t, err)
		cod, err := pricing.Quote(lines, testConfig, nil, pricing.PaymentCOD, step)
		require.NoError(t, err)

		// Switching payment method before the payment step never changes the total.
		assert.Equal(t, transfer.FinalTotal, cod.FinalTotal, "step %d", step)
		assert.Equal(t, 0.0, transfer.TransferDiscount)
		assert.Equal(t, 0.0, cod.CODFee)
	}
}

func TestQuote_TransferDiscountAtPaymentStep(t *testing.T) {
	// 5% of the post-coupon subtotal 200 is 10.
	lines := []pricing.Line{{UnitPrice: 200, Quantity: 1, Stock: 1}}

	b, err := pricing.Quote(lines, testConfig, nil, pricing.PaymentTransfer, pricing.StepPayment)

	require.NoError(t, err)
	assert.InDelta(t, 10.0, b.TransferDiscount, 1e-9)
	assert.Equal(t, 0.0, b.CODFee)
	assert.InDelta(t, 200+testConfig.ShippingFee-10, b.FinalTotal, 1e-9)
}

func TestQuote_CODFeeAtPaymentStep(t *testing.T) {
	lines := []pricing.Line{{UnitPrice: 200, Quantity: 1, Stock: 1}}

	b, err := pricing.Quote(lines, testConfig, nil, pricing.PaymentCOD, pricing.StepPayment)

	require.NoError(t, err)
	assert.Equal(t, testConfig.CODFee, b.CODFee)
	assert.Equal(t, 0.0, b.TransferDiscount)
	assert.InDelta(t, 200+testConfig.ShippingFee+testConfig.CODFee, b.FinalTotal, 1e-9)
}

func TestQuote_FinalTotalNeverNegative(t *testing.T) {
	// Coupon bigger than the cart: discount is capped, total clamps at zero
	// before shipping is added.
	lines := []pricing.Line{{UnitPrice: 30, Quantity: 1, Stock: 1}}
	coupon := &pricing.Coupon{Code: "HUGE", DiscountAmount: 1000, Active: true}

	b, err := pricing.Quote(lines, testConfig, coupon, pricing.PaymentTransfer, pricing.StepPayment)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, b.FinalTotal, 0.0)
	assert.Equal(t, testConfig.ShippingFee, b.FinalTotal)
}

func TestQuote_EmptyCart(t *testing.T) {
	b, err := pricing.Quote(nil, testConfig, nil, pricing.PaymentTransfer, pricing.StepCart)

	require.NoError(t, err)
	assert.Equal(t, 0.0, b.GrossTotal)
	assert.Equal(t, 0.0, b.ProductsSubtotal)
	// An empty cart still quotes the shipping fee; checkout gates on valid
	// items before an order can be placed.
	assert.Equal(t, testConfig.ShippingFee, b.FinalTotal)
}

func TestQuote_RejectsNegativeInputs(t *testing.T) {
	tests := []struct {
		name string
		line pricing.Line
	}{
		{"negative quantity", pricing.Line{UnitPrice: 10, Quantity: -1, Stock: 5}},
		{"negative price", pricing.Line{UnitPrice: -10, Quantity: 1, Stock: 5}},
		{"negative discount price", pricing.Line{UnitPrice: 10, DiscountUnitPrice: fptr(-5), Quantity: 1, Stock: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pricing.Quote([]pricing.Line{tt.line}, testConfig, nil, pricing.PaymentTransfer, pricing.StepCart)

			assert.ErrorIs(t, err, pricing.ErrInvalidLine)
		})
	}
}

func TestQuote_Deterministic(t *testing.T) {
	lines := []pricing.Line{
		{UnitPrice: 119.90, DiscountUnitPrice: fptr(99.90), Quantity: 3, Stock: 7},
		{UnitPrice: 45.50, Quantity: 2, Stock: 1},
	}
	coupon := &pricing.Coupon{Code: "X", DiscountAmount: 25, MinSpend: 100, Active: true}

	first, err := pricing.Quote(lines, testConfig, coupon, pricing.PaymentCOD, pricing.StepPayment)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := pricing.Quote(lines, testConfig, coupon, pricing.PaymentCOD, pricing.StepPayment)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.0, pricing.Round2(9.999))
	assert.Equal(t, 9.99, pricing.Round2(9.994))
	assert.Equal(t, 0.0, pricing.Round2(0))
}
