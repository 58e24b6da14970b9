package admin

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// UserHandler manages customer accounts from the back office.
type UserHandler struct {
	users domain.UserService
}

func NewUserHandler(users domain.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /api/admin/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	views := make([]handler.UserView, 0, len(users))
	for i := range users {
		views = append(views, handler.NewUserView(&users[i]))
	}
	handler.JSON(w, http.StatusOK, views)
}

type roleRequest struct {
	Role string `json:"role"`
}

// SetRole handles PATCH /api/admin/users/{id}
//
// Setting the role to banned revokes storefront access on the user's next
// request; existing sessions are not deleted.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.users.SetRole(r.Context(), r.PathValue("id"), req.Role)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewUserView(user))
}
