package routes

import (
	"github.com/denizgunduz/pazar/internal/middleware"
	"github.com/denizgunduz/pazar/internal/router"
)

// RegisterStorefrontRoutes registers the customer-facing API.
//
// Catalog browsing is public; everything touching a user's own data sits
// behind RequireAuth. Auth endpoints get their own rate limit registered
// by the caller.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps, authLimit router.Middleware) {
	// Public catalog and site config
	r.Get("/api/config", deps.Config.View)
	r.Get("/api/categories", deps.Catalog.ListCategories)
	r.Get("/api/products", deps.Catalog.ListProducts)
	r.Get("/api/products/{id}", deps.Catalog.GetProduct)
	r.Get("/api/products/{id}/reviews", deps.Reviews.List)
	r.Get("/api/coupons", deps.Coupons.List)

	// Authentication
	r.Post("/api/auth/register", deps.Auth.Register, authLimit)
	r.Post("/api/auth/login", deps.Auth.Login, authLimit)
	r.Post("/api/auth/logout", deps.Auth.Logout)

	// Authenticated storefront
	authed := r.Group(middleware.RequireAuth)
	authed.Get("/api/auth/me", deps.Auth.Me)

	authed.Get("/api/profile", deps.Profile.View)
	authed.Put("/api/profile", deps.Profile.Update)

	authed.Get("/api/cart", deps.Cart.View)
	authed.Post("/api/cart/items", deps.Cart.AddItem)
	authed.Put("/api/cart/items/{id}", deps.Cart.UpdateItem)
	authed.Delete("/api/cart/items/{id}", deps.Cart.RemoveItem)
	authed.Delete("/api/cart", deps.Cart.Clear)

	authed.Post("/api/coupons/validate", deps.Coupons.Validate)

	authed.Post("/api/checkout/quote", deps.Checkout.Quote)
	authed.Post("/api/checkout/validate", deps.Checkout.ValidateDelivery)
	authed.Post("/api/checkout/submit", deps.Checkout.Submit)
	authed.Get("/api/checkout/prefill", deps.Checkout.Prefill)

	authed.Get("/api/orders", deps.Orders.List)
	authed.Get("/api/orders/{id}", deps.Orders.Get)
	authed.Post("/api/orders/{id}/cancel", deps.Orders.Cancel)

	authed.Get("/api/favorites", deps.Favorites.List)
	authed.Post("/api/favorites", deps.Favorites.Add)
	authed.Delete("/api/favorites/{productID}", deps.Favorites.Remove)

	authed.Post("/api/products/{id}/reviews", deps.Reviews.Create)

	authed.Get("/api/addresses", deps.Addresses.List)
	authed.Post("/api/addresses", deps.Addresses.Create)
	authed.Put("/api/addresses/{id}", deps.Addresses.Update)
	authed.Delete("/api/addresses/{id}", deps.Addresses.Delete)
	authed.Post("/api/addresses/{id}/default", deps.Addresses.SetDefault)
}
