package routes

import (
	"github.com/denizgunduz/pazar/internal/middleware"
	"github.com/denizgunduz/pazar/internal/router"
)

// RegisterAdminRoutes registers the back-office API under /api/admin.
// Every route requires an authenticated admin user.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	admin := r.Group(middleware.RequireAdmin)

	// Catalog management
	admin.Get("/api/admin/products", deps.Products.List)
	admin.Post("/api/admin/products", deps.Products.Create)
	admin.Put("/api/admin/products/{id}", deps.Products.Update)
	admin.Delete("/api/admin/products/{id}", deps.Products.Delete)

	admin.Get("/api/admin/categories", deps.Categories.List)
	admin.Post("/api/admin/categories", deps.Categories.Create)
	admin.Put("/api/admin/categories/{id}", deps.Categories.Update)
	admin.Delete("/api/admin/categories/{id}", deps.Categories.Delete)

	// Order fulfillment
	admin.Get("/api/admin/orders", deps.Orders.List)
	admin.Get("/api/admin/orders/{id}", deps.Orders.Get)
	admin.Patch("/api/admin/orders/{id}", deps.Orders.UpdateStatus)

	// Coupons
	admin.Get("/api/admin/coupons", deps.Coupons.List)
	admin.Post("/api/admin/coupons", deps.Coupons.Create)
	admin.Put("/api/admin/coupons/{id}", deps.Coupons.Update)
	admin.Delete("/api/admin/coupons/{id}", deps.Coupons.Delete)

	// Site settings
	admin.Get("/api/admin/settings", deps.Settings.View)
	admin.Put("/api/admin/settings", deps.Settings.Update)

	// Review moderation
	admin.Get("/api/admin/reviews", deps.Reviews.ListPending)
	admin.Patch("/api/admin/reviews/{id}", deps.Reviews.SetApproval)
	admin.Delete("/api/admin/reviews/{id}", deps.Reviews.Delete)

	// Customers
	admin.Get("/api/admin/users", deps.Users.List)
	admin.Patch("/api/admin/users/{id}", deps.Users.SetRole)

	// Image uploads
	admin.Post("/api/admin/uploads", deps.Uploads.Upload)
	admin.Delete("/api/admin/uploads/{key...}", deps.Uploads.Delete)
}
