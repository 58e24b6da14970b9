package storefront

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// ProfileHandler serves the user's own account record.
type ProfileHandler struct {
	users domain.UserService
}

func NewProfileHandler(users domain.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// View handles GET /api/profile
func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetProfile(r.Context(), currentUserID(r))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewUserView(user))
}

type updateProfileRequest struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"`
}

// Update handles PUT /api/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	update := domain.ProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		Gender:   req.Gender,
	}
	if req.BirthDate != "" {
		var d pgtype.Date
		if err := d.Scan(req.BirthDate); err != nil {
			handler.ErrorResponse(w, r, domain.Invalid("profile.update", "birth_date must be YYYY-MM-DD"))
			return
		}
		update.BirthDate = d
	}

	user, err := h.users.UpdateProfile(r.Context(), currentUserID(r), update)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewUserView(user))
}
