package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrInsufficientStock = &Error{Code: ECONFLICT, Message: "Insufficient stock for one or more items"}
)

// CartItem represents a cart line with the joined product snapshot the
// storefront needs to render and price it. Out-of-stock lines stay in the
// cart and remain visible; they are excluded from pricing and checkout.
type CartItem struct {
	ID        pgtype.UUID
	ProductID pgtype.UUID
	Quantity  int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz

	ProductName   string
	UnitPrice     float64
	DiscountPrice *float64
	Stock         int32
	ImageURL      string
}

// CartSummary aggregates a user's cart with item count.
type CartSummary struct {
	Items     []CartItem
	ItemCount int
}

// CartService provides business logic for shopping cart operations.
// Carts are per-user; the user comes from the request context.
type CartService interface {
	// GetCart returns the user's cart items with product details.
	GetCart(ctx context.Context, userID string) (*CartSummary, error)

	// AddItem adds a product to the cart or increments quantity if present.
	AddItem(ctx context.Context, userID, productID string, quantity int32) (*CartSummary, error)

	// UpdateItemQuantity sets the quantity of a cart item.
	// Quantity must be >= 1 and within available stock.
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int32) (*CartSummary, error)

	// RemoveItem removes a cart item.
	RemoveItem(ctx context.Context, userID, itemID string) (*CartSummary, error)

	// ClearCart removes all items from the user's cart.
	ClearCart(ctx context.Context, userID string) error
}
