package admin

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// CategoryHandler manages categories from the back office.
type CategoryHandler struct {
	categories domain.CategoryService
}

func NewCategoryHandler(categories domain.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ImageURL     string `json:"image_url"`
	Icon         string `json:"icon"`
	DisplayOrder int32  `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

func (req categoryRequest) input() domain.CategoryInput {
	return domain.CategoryInput{
		Name:         req.Name,
		Slug:         req.Slug,
		ImageURL:     req.ImageURL,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	}
}

// List handles GET /api/admin/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListAllCategories(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewCategoryViews(categories))
}

// Create handles POST /api/admin/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	category, err := h.categories.CreateCategory(r.Context(), req.input())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, handler.NewCategoryView(*category))
}

// Update handles PUT /api/admin/categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	category, err := h.categories.UpdateCategory(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewCategoryView(*category))
}

// Delete handles DELETE /api/admin/categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.NoContent(w)
}
