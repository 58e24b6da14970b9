// Package routes wires handlers onto the router. Registration is split by
// surface: the public/customer storefront API and the admin back office.
package routes

import (
	"github.com/denizgunduz/pazar/internal/handler/admin"
	"github.com/denizgunduz/pazar/internal/handler/storefront"
)

// StorefrontDeps contains the handlers for customer-facing routes.
type StorefrontDeps struct {
	Catalog   *storefront.CatalogHandler
	Cart      *storefront.CartHandler
	Checkout  *storefront.CheckoutHandler
	Auth      *storefront.AuthHandler
	Profile   *storefront.ProfileHandler
	Orders    *storefront.OrderHandler
	Favorites *storefront.FavoriteHandler
	Reviews   *storefront.ReviewHandler
	Coupons   *storefront.CouponHandler
	Addresses *storefront.AddressHandler
	Config    *storefront.ConfigHandler
}

// AdminDeps contains the handlers for back-office routes.
type AdminDeps struct {
	Products   *admin.ProductHandler
	Categories *admin.CategoryHandler
	Orders     *admin.OrderHandler
	Coupons    *admin.CouponHandler
	Settings   *admin.SettingsHandler
	Reviews    *admin.ReviewHandler
	Users      *admin.UserHandler
	Uploads    *admin.UploadHandler
}
