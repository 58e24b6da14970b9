package storefront

import (
	"net/http"
	"strings"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// AuthHandler serves registration, login and session management.
type AuthHandler struct {
	users domain.UserService
}

func NewAuthHandler(users domain.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type sessionResponse struct {
	User  handler.UserView `json:"user"`
	Token string           `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, session, err := h.users.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, sessionResponse{
		User:  handler.NewUserView(user),
		Token: session.Token,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, session, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, sessionResponse{
		User:  handler.NewUserView(user),
		Token: session.Token,
	})
}

// Logout handles POST /api/auth/logout
//
// Revokes the presented bearer token. Missing or unknown tokens are a no-op
// so logout never fails on the client.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	raw := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(raw, "Bearer "); ok {
		_ = h.users.Logout(r.Context(), strings.TrimSpace(after))
	}
	handler.NoContent(w)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	handler.JSON(w, http.StatusOK, handler.NewUserView(currentUser(r)))
}
