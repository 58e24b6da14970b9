package storefront

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// FavoriteHandler serves the user's favorites list.
type FavoriteHandler struct {
	favorites domain.FavoriteService
}

func NewFavoriteHandler(favorites domain.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List handles GET /api/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.ListFavorites(r.Context(), currentUserID(r))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewFavoriteViews(favorites))
}

type addFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

// Add handles POST /api/favorites
//
// Adding a product twice is not an error; the existing favorite is returned.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	favorite, err := h.favorites.AddFavorite(r.Context(), currentUserID(r), req.ProductID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	view := handler.FavoriteView{ID: handler.UUIDString(favorite.ID)}
	if favorite.Product != nil {
		p := handler.NewProductView(*favorite.Product)
		view.Product = &p
	}
	handler.JSON(w, http.StatusCreated, view)
}

// Remove handles DELETE /api/favorites/{productID}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.favorites.RemoveFavorite(r.Context(), currentUserID(r), r.PathValue("productID")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.NoContent(w)
}
