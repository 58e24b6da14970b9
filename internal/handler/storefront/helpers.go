// Package storefront contains the JSON handlers for the customer-facing API.
package storefront

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
	"github.com/denizgunduz/pazar/internal/middleware"
)

// currentUser returns the authenticated user. Handlers behind RequireAuth
// can rely on it being non-nil.
func currentUser(r *http.Request) *domain.User {
	return middleware.GetUserFromContext(r.Context())
}

// currentUserID is a shortcut for the common service-call argument.
func currentUserID(r *http.Request) string {
	return handler.UUIDString(currentUser(r).ID)
}
