package storefront

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// ReviewHandler serves product review listing and submission.
type ReviewHandler struct {
	reviews domain.ReviewService
}

func NewReviewHandler(reviews domain.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewListResponse struct {
	Rating      float64              `json:"rating"`
	ReviewCount int64                `json:"review_count"`
	Reviews     []handler.ReviewView `json:"reviews"`
}

// List handles GET /api/products/{id}/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, rating, err := h.reviews.ListProductReviews(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, reviewListResponse{
		Rating:      rating.Average,
		ReviewCount: rating.Count,
		Reviews:     handler.NewReviewViews(reviews),
	})
}

type createReviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

// Create handles POST /api/products/{id}/reviews
//
// New reviews await moderation, so the response carries the pending review
// rather than appearing in the public list.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), currentUserID(r), r.PathValue("id"), req.Rating, req.Comment)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, handler.NewReviewView(*review))
}
