// Package repository provides PostgreSQL data access for the storefront.
// Queries runs against a pool or, via WithTx, inside a transaction.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Queries implements Querier over a DBTX.
type Queries struct {
	db DBTX
}

// New creates a Queries instance.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// Querier is the data access surface the services depend on.
type Querier interface {
	// Users and sessions
	CreateUser(ctx context.Context, email, passwordHash, fullName string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, string, error)
	GetUserByID(ctx context.Context, id pgtype.UUID) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, id pgtype.UUID, update domain.ProfileUpdate) (*domain.User, error)
	UpdateUserRole(ctx context.Context, id pgtype.UUID, role string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateSession(ctx context.Context, userID pgtype.UUID, token string, expiresAt pgtype.Timestamptz) (*domain.Session, error)
	GetSessionByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// Catalog
	ListActiveCategories(ctx context.Context) ([]domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id pgtype.UUID) (*domain.Category, error)
	CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id pgtype.UUID, input domain.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id pgtype.UUID) error
	ListActiveProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id pgtype.UUID) (*domain.Product, error)
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id pgtype.UUID, input domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id pgtype.UUID) error
	DecrementProductStock(ctx context.Context, id pgtype.UUID, quantity int32) error
	IncrementProductStock(ctx context.Context, id pgtype.UUID, quantity int32) error

	// Cart
	ListCartItems(ctx context.Context, userID pgtype.UUID) ([]domain.CartItem, error)
	GetCartItem(ctx context.Context, userID, itemID pgtype.UUID) (*domain.CartItem, error)
	UpsertCartItem(ctx context.Context, userID, productID pgtype.UUID, quantity int32) error
	SetCartItemQuantity(ctx context.Context, userID, itemID pgtype.UUID, quantity int32) error
	DeleteCartItem(ctx context.Context, userID, itemID pgtype.UUID) error
	ClearCart(ctx context.Context, userID pgtype.UUID) error

	// Favorites
	ListFavorites(ctx context.Context, userID pgtype.UUID) ([]domain.Favorite, error)
	CreateFavorite(ctx context.Context, userID, productID pgtype.UUID) (*domain.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, productID pgtype.UUID) error

	// Coupons
	ListActiveCoupons(ctx context.Context) ([]domain.Coupon, error)
	ListCoupons(ctx context.Context) ([]domain.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	GetCouponByID(ctx context.Context, id pgtype.UUID) (*domain.Coupon, error)
	CreateCoupon(ctx context.Context, input domain.CouponInput) (*domain.Coupon, error)
	UpdateCoupon(ctx context.Context, id pgtype.UUID, input domain.CouponInput) (*domain.Coupon, error)
	DeleteCoupon(ctx context.Context, id pgtype.UUID) error

	// Orders
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	CreateOrderItem(ctx context.Context, item *domain.OrderItem) error
	GetOrderByID(ctx context.Context, id pgtype.UUID) (*domain.Order, error)
	GetOrderByCode(ctx context.Context, userID pgtype.UUID, code string) (*domain.Order, error)
	ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]domain.OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID pgtype.UUID) ([]domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id pgtype.UUID, update domain.OrderStatusUpdate) (*domain.Order, error)
	ListStaleTransferOrders(ctx context.Context, olderThan pgtype.Timestamptz) ([]domain.Order, error)

	// Reviews
	ListApprovedReviews(ctx context.Context, productID pgtype.UUID) ([]domain.Review, error)
	GetProductRating(ctx context.Context, productID pgtype.UUID) (*domain.ProductRating, error)
	GetReviewByUserAndProduct(ctx context.Context, userID, productID pgtype.UUID) (*domain.Review, error)
	HasDeliveredProduct(ctx context.Context, userID, productID pgtype.UUID) (bool, error)
	CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListPendingReviews(ctx context.Context) ([]domain.Review, error)
	SetReviewApproval(ctx context.Context, id pgtype.UUID, approved bool) (*domain.Review, error)
	DeleteReview(ctx context.Context, id pgtype.UUID) error

	// Addresses
	ListAddresses(ctx context.Context, userID pgtype.UUID) ([]domain.Address, error)
	GetAddress(ctx context.Context, userID, addressID pgtype.UUID) (*domain.Address, error)
	GetLatestAddress(ctx context.Context, userID pgtype.UUID) (*domain.Address, error)
	CreateAddress(ctx context.Context, userID pgtype.UUID, input domain.AddressInput) (*domain.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID pgtype.UUID, input domain.AddressInput) (*domain.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID pgtype.UUID) error
	ClearDefaultAddress(ctx context.Context, userID pgtype.UUID) error
	SetDefaultAddress(ctx context.Context, userID, addressID pgtype.UUID) error

	// Settings
	ListSettings(ctx context.Context) (map[string]string, error)
	UpsertSetting(ctx context.Context, key, value string) error
}

var _ Querier = (*Queries)(nil)
