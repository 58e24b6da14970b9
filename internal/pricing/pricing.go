// Package pricing computes checkout order totals from cart, settings and
// coupon snapshots. It performs no I/O and holds no state; every quote is
// derived fresh from its inputs, so it is safe to call concurrently.
package pricing

import (
	"errors"
	"math"
)

// PaymentMethod selects the payment surcharge/discount class. The two are
// mutually exclusive: only one applies per order.
type PaymentMethod string

const (
	// PaymentTransfer is bank transfer / EFT. Applies the transfer discount
	// percentage to the post-coupon subtotal.
	PaymentTransfer PaymentMethod = "bank_transfer"
	// PaymentCOD is cash on delivery. Adds the flat COD fee.
	PaymentCOD PaymentMethod = "cash_on_delivery"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentTransfer || m == PaymentCOD
}

// Step is the checkout step the user is on. Payment surcharges and discounts
// are only applied at StepPayment, once the user has committed to a payment
// method; showing them earlier would present a misleading total.
type Step int

const (
	StepCart Step = iota + 1
	StepDelivery
	StepPayment
)

func (s Step) String() string {
	switch s {
	case StepCart:
		return "cart"
	case StepDelivery:
		return "delivery"
	case StepPayment:
		return "payment"
	}
	return "unknown"
}

// Line is an immutable cart line snapshot. UnitPrice is the original
// (non-sale) price; DiscountUnitPrice, when set and strictly below UnitPrice,
// is the per-item sale price.
type Line struct {
	ProductID         string
	UnitPrice         float64
	DiscountUnitPrice *float64
	Quantity          int
	Stock             int
}

// discounted reports whether the line carries an effective product discount.
func (l Line) discounted() bool {
	return l.DiscountUnitPrice != nil && *l.DiscountUnitPrice < l.UnitPrice
}

// Config is the pricing slice of the site settings snapshot.
type Config struct {
	ShippingFee             float64
	FreeShippingThreshold   float64
	CODFee                  float64
	TransferDiscountPercent float64
}

// Coupon is a flat-amount discount code with a minimum-spend gate.
type Coupon struct {
	Code           string
	DiscountAmount float64
	MinSpend       float64
	Active         bool
}

// Breakdown is the priced view of an order. It is computed, never persisted
// by this package, and recomputed on every cart mutation, coupon application
// or payment-method change.
type Breakdown struct {
	GrossTotal           float64 `json:"gross_total"`
	ProductDiscountTotal float64 `json:"product_discount_total"`
	ProductsSubtotal     float64 `json:"products_subtotal"`
	CouponDiscount       float64 `json:"coupon_discount"`
	FreeShipping         bool    `json:"free_shipping"`
	ShippingCost         float64 `json:"shipping_cost"`
	TransferDiscount     float64 `json:"transfer_discount"`
	CODFee               float64 `json:"cod_fee"`
	FinalTotal           float64 `json:"final_total"`
}

// ErrInvalidLine is returned when a line carries a negative quantity or
// price. Callers validate upstream, so hitting this is a precondition
// violation, but the engine guards anyway.
var ErrInvalidLine = errors.New("pricing: negative quantity or price")

// CouponReason explains why a coupon did not apply.
type CouponReason string

const (
	// ReasonInactive covers unknown codes as well: the caller resolves the
	// code first, and a lookup miss surfaces the same way.
	ReasonInactive CouponReason = "invalid_code"
	ReasonMinSpend CouponReason = "below_min_spend"
)

// CouponResult is the structured outcome of a coupon check. It is returned,
// not raised: callers use Reason to pick the user-facing message.
type CouponResult struct {
	Valid  bool
	Amount float64
	Reason CouponReason
}

// ValidLines filters out lines with no available stock. Out-of-stock items
// remain visible to the user but never contribute to totals.
func ValidLines(lines []Line) []Line {
	valid := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Stock > 0 {
			valid = append(valid, l)
		}
	}
	return valid
}

// GrossTotal sums unit price times quantity over the given lines, always
// using the original price.
func GrossTotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// ProductDiscountTotal sums the per-item sale reductions over the given
// lines. Computed from the original price so display-price choices cannot
// double count.
func ProductDiscountTotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		if l.discounted() {
			total += (l.UnitPrice - *l.DiscountUnitPrice) * float64(l.Quantity)
		}
	}
	return total
}

// ApplyCoupon checks a coupon against the products subtotal. A nil coupon is
// an invalid code (lookup miss). The boundary is inclusive: a subtotal equal
// to MinSpend qualifies. The granted amount is clamped to [0, subtotal] so a
// coupon can never push a total negative, nor inflate it should a negative
// amount ever reach the engine.
func ApplyCoupon(coupon *Coupon, productsSubtotal float64) CouponResult {
	if coupon == nil || !coupon.Active {
		return CouponResult{Reason: ReasonInactive}
	}
	if coupon.MinSpend > 0 && productsSubtotal < coupon.MinSpend {
		return CouponResult{Reason: ReasonMinSpend}
	}
	amount := math.Max(0, math.Min(coupon.DiscountAmount, productsSubtotal))
	return CouponResult{Valid: true, Amount: amount}
}

// Quote computes the full order breakdown. Lines are filtered for stock
// first; the coupon, when non-nil, must already have been resolved and
// validated by the caller (Quote re-checks and ignores it if inapplicable).
// Intermediate arithmetic is unrounded; display rounding is the caller's
// concern.
func Quote(lines []Line, cfg Config, coupon *Coupon, method PaymentMethod, step Step) (Breakdown, error) {
	for _, l := range lines {
		if l.Quantity < 0 || l.UnitPrice < 0 || (l.DiscountUnitPrice != nil && *l.DiscountUnitPrice < 0) {
			return Breakdown{}, ErrInvalidLine
		}
	}

	valid := ValidLines(lines)

	b := Breakdown{
		GrossTotal:           GrossTotal(valid),
		ProductDiscountTotal: ProductDiscountTotal(valid),
	}
	b.ProductsSubtotal = b.GrossTotal - b.ProductDiscountTotal

	b.FreeShipping = b.ProductsSubtotal >= cfg.FreeShippingThreshold
	if !b.FreeShipping {
		b.ShippingCost = cfg.ShippingFee
	}

	if res := ApplyCoupon(coupon, b.ProductsSubtotal); res.Valid {
		b.CouponDiscount = res.Amount
	}
	subtotalAfterCoupon := math.Max(0, b.ProductsSubtotal-b.CouponDiscount)

	if step == StepPayment {
		switch method {
		case PaymentTransfer:
			b.TransferDiscount = subtotalAfterCoupon * cfg.TransferDiscountPercent / 100
		case PaymentCOD:
			b.CODFee = cfg.CODFee
		}
	}

	b.FinalTotal = subtotalAfterCoupon + b.ShippingCost - b.TransferDiscount + b.CODFee
	return b, nil
}

// Round2 rounds a money amount to 2 decimal places for display or
// persistence. Quote itself never rounds.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
