package admin

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// ReviewHandler moderates customer reviews.
type ReviewHandler struct {
	reviews domain.ReviewService
}

func NewReviewHandler(reviews domain.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// ListPending handles GET /api/admin/reviews
func (h *ReviewHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListPendingReviews(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewReviewViews(reviews))
}

type approvalRequest struct {
	Approved bool `json:"approved"`
}

// SetApproval handles PATCH /api/admin/reviews/{id}
func (h *ReviewHandler) SetApproval(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	review, err := h.reviews.SetApproval(r.Context(), r.PathValue("id"), req.Approved)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewReviewView(*review))
}

// Delete handles DELETE /api/admin/reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.DeleteReview(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.NoContent(w)
}
