package admin

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// CouponHandler manages coupons from the back office.
type CouponHandler struct {
	coupons domain.CouponService
}

func NewCouponHandler(coupons domain.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type couponRequest struct {
	Code           string  `json:"code"`
	Description    string  `json:"description"`
	DiscountAmount float64 `json:"discount_amount"`
	MinSpend       float64 `json:"min_spend"`
	IsActive       bool    `json:"is_active"`
}

func (req couponRequest) input() domain.CouponInput {
	return domain.CouponInput{
		Code:           req.Code,
		Description:    req.Description,
		DiscountAmount: req.DiscountAmount,
		MinSpend:       req.MinSpend,
		IsActive:       req.IsActive,
	}
}

// List handles GET /api/admin/coupons
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.ListAllCoupons(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewCouponViews(coupons))
}

// Create handles POST /api/admin/coupons
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	coupon, err := h.coupons.CreateCoupon(r.Context(), req.input())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, handler.NewCouponView(*coupon))
}

// Update handles PUT /api/admin/coupons/{id}
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	coupon, err := h.coupons.UpdateCoupon(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewCouponView(*coupon))
}

// Delete handles DELETE /api/admin/coupons/{id}
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.coupons.DeleteCoupon(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.NoContent(w)
}
