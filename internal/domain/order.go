package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/pricing"
)

// Order statuses. Bank transfer orders start at PAYMENT_PENDING, cash on
// delivery orders at PROCESSING.
const (
	OrderStatusPaymentPending  = "PAYMENT_PENDING"
	OrderStatusProcessing      = "PROCESSING"
	OrderStatusShipped         = "SHIPPED"
	OrderStatusDelivered       = "DELIVERED"
	OrderStatusCancelled       = "CANCELLED"
	OrderStatusReturnRequested = "RETURN_REQUESTED"
	OrderStatusReturnApproved  = "RETURN_APPROVED"
	OrderStatusReturned        = "RETURNED"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusReceived = "received"
	PaymentStatusCOD      = "cod"
	PaymentStatusRefunded = "refunded"
)

var (
	ErrOrderNotFound        = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrEmptyCart            = &Error{Code: EINVALID, Message: "No purchasable items in cart"}
	ErrOrderNotCancellable  = &Error{Code: ECONFLICT, Message: "Order can no longer be cancelled"}
	ErrInvalidStatusChange  = &Error{Code: EINVALID, Message: "Invalid order status transition"}
	ErrIncompleteAddress    = &Error{Code: EINVALID, Message: "Delivery information is incomplete"}
	ErrDuplicateOrder       = &Error{Code: ECONFLICT, Message: "Order was already submitted"}
	ErrOrderStatusConflict  = &Error{Code: ECONFLICT, Message: "Order was updated concurrently, please retry"}
)

// ShippingAddress is the delivery form snapshot stored on the order.
type ShippingAddress struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	City     string `json:"city" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

// Order represents a placed order with its priced totals.
type Order struct {
	ID             pgtype.UUID
	UserID         pgtype.UUID
	OrderCode      string
	Status         string
	PaymentMethod  pricing.PaymentMethod
	PaymentStatus  string
	Subtotal       float64
	ShippingCost   float64
	DiscountAmount float64
	TotalAmount    float64
	ShippingAddr   ShippingAddress
	CouponCode     string
	TrackingNumber string
	Notes          string
	AdminNotes     string
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
	PaidAt         pgtype.Timestamptz
	ShippedAt      pgtype.Timestamptz
	DeliveredAt    pgtype.Timestamptz
	CancelledAt    pgtype.Timestamptz

	Items []OrderItem
}

// OrderItem snapshots a purchased cart line. Price is the original unit price
// and DiscountPrice the sale price at purchase time, so historical orders
// keep their totals when the catalog changes.
type OrderItem struct {
	ID            pgtype.UUID
	OrderID       pgtype.UUID
	ProductID     pgtype.UUID
	Quantity      int32
	Price         float64
	DiscountPrice *float64
	ProductName   string
	ImageURL      string
	CreatedAt     pgtype.Timestamptz
}

// QuoteParams are the inputs to a checkout quote.
type QuoteParams struct {
	CouponCode    string
	PaymentMethod pricing.PaymentMethod
	Step          pricing.Step
}

// Quote is a priced view of the user's current cart.
type Quote struct {
	Breakdown pricing.Breakdown
	Coupon    *Coupon
}

// SubmitOrderParams are the inputs to order submission. OrderCode is the
// idempotency key: retrying with the same code returns the existing order.
type SubmitOrderParams struct {
	OrderCode     string
	PaymentMethod pricing.PaymentMethod
	CouponCode    string
	Address       ShippingAddress
	Note          string
}

// CheckoutService drives the Cart -> Delivery -> Payment flow.
type CheckoutService interface {
	// Quote prices the user's cart for the given step and payment method.
	// Surcharges only apply at the payment step, mirroring what the client
	// shows the user.
	Quote(ctx context.Context, userID string, params QuoteParams) (*Quote, error)

	// ValidateDelivery checks the step gates for leaving Cart and Delivery:
	// non-empty valid cart, coupon still applicable, complete address.
	ValidateDelivery(ctx context.Context, userID string, params SubmitOrderParams) error

	// SubmitOrder atomically creates the order header and items, decrements
	// stock and clears the cart. All rows persist or none do.
	SubmitOrder(ctx context.Context, userID string, params SubmitOrderParams) (*Order, error)
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status string
	Limit  int32
}

// OrderStatusUpdate carries an admin status transition.
type OrderStatusUpdate struct {
	Status         string
	PaymentStatus  string
	TrackingNumber string
	AdminNotes     string

	// ExpectStatus guards the write: when set, the update only applies while
	// the stored status still matches, and a concurrent transition fails with
	// ErrOrderStatusConflict instead of clobbering it.
	ExpectStatus string
}

// OrderService provides order retrieval and lifecycle management.
type OrderService interface {
	// ListUserOrders returns the user's orders, newest first.
	ListUserOrders(ctx context.Context, userID string) ([]Order, error)

	// GetUserOrder retrieves one of the user's orders with items.
	GetUserOrder(ctx context.Context, userID, orderID string) (*Order, error)

	// CancelOrder cancels an order still in PAYMENT_PENDING or PROCESSING.
	CancelOrder(ctx context.Context, userID, orderID string) (*Order, error)

	// Admin operations.
	ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, update OrderStatusUpdate) (*Order, error)
}
