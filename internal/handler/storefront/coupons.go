package storefront

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
	"github.com/denizgunduz/pazar/internal/pricing"
)

// CouponHandler serves the public coupon list and cart validation.
type CouponHandler struct {
	coupons  domain.CouponService
	checkout domain.CheckoutService
}

func NewCouponHandler(coupons domain.CouponService, checkout domain.CheckoutService) *CouponHandler {
	return &CouponHandler{coupons: coupons, checkout: checkout}
}

// List handles GET /api/coupons
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.ListActiveCoupons(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewCouponViews(coupons))
}

type validateCouponRequest struct {
	Code string `json:"code"`
}

// Validate handles POST /api/coupons/validate
//
// Prices the user's current cart with the code applied. The quote carries
// the resulting totals so the client can show the discount immediately.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	quote, err := h.checkout.Quote(r.Context(), currentUserID(r), domain.QuoteParams{
		CouponCode: req.Code,
		Step:       pricing.StepCart,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewQuoteView(quote))
}
