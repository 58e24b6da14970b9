package storefront

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
	"github.com/denizgunduz/pazar/internal/pricing"
)

// CheckoutHandler drives the Cart -> Delivery -> Payment flow over JSON.
type CheckoutHandler struct {
	checkout  domain.CheckoutService
	addresses domain.AddressService
}

func NewCheckoutHandler(checkout domain.CheckoutService, addresses domain.AddressService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, addresses: addresses}
}

type quoteRequest struct {
	CouponCode    string `json:"coupon_code"`
	PaymentMethod string `json:"payment_method"`
	Step          int    `json:"step"`
}

// Quote handles POST /api/checkout/quote
//
// The client calls this on every step change so the totals it shows always
// come from the server.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	quote, err := h.checkout.Quote(r.Context(), currentUserID(r), domain.QuoteParams{
		CouponCode:    req.CouponCode,
		PaymentMethod: pricing.PaymentMethod(req.PaymentMethod),
		Step:          pricing.Step(req.Step),
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewQuoteView(quote))
}

type submitOrderRequest struct {
	OrderCode     string                 `json:"order_code"`
	PaymentMethod string                 `json:"payment_method"`
	CouponCode    string                 `json:"coupon_code"`
	Address       domain.ShippingAddress `json:"address"`
	Note          string                 `json:"note"`
}

func (req submitOrderRequest) params() domain.SubmitOrderParams {
	return domain.SubmitOrderParams{
		OrderCode:     req.OrderCode,
		PaymentMethod: pricing.PaymentMethod(req.PaymentMethod),
		CouponCode:    req.CouponCode,
		Address:       req.Address,
		Note:          req.Note,
	}
}

// ValidateDelivery handles POST /api/checkout/validate
//
// Gates the step transitions before payment: the cart must have purchasable
// items, the coupon must still apply and the address must be complete.
func (h *CheckoutHandler) ValidateDelivery(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.checkout.ValidateDelivery(r.Context(), currentUserID(r), req.params()); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// Submit handles POST /api/checkout/submit
//
// OrderCode is generated client-side and acts as the idempotency key, so a
// retried submission returns the already-created order instead of a
// duplicate.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.checkout.SubmitOrder(r.Context(), currentUserID(r), req.params())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, handler.NewOrderView(order, false))
}

// Prefill handles GET /api/checkout/prefill
//
// Returns the user's latest saved address for the delivery form, or null
// when they have none.
func (h *CheckoutHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	address, err := h.addresses.LatestAddress(r.Context(), currentUserID(r))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if address == nil {
		handler.JSON(w, http.StatusOK, map[string]any{"address": nil})
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"address": handler.NewAddressView(address)})
}
