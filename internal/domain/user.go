package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleBanned   = "banned"
)

var (
	ErrUserNotFound       = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrDuplicateEmail     = &Error{Code: ECONFLICT, Message: "Email already registered"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
	ErrUserBanned         = &Error{Code: EFORBIDDEN, Message: "This account has been suspended"}
	ErrSessionNotFound    = &Error{Code: EUNAUTHORIZED, Message: "Session expired or not found"}
	ErrAddressNotFound    = &Error{Code: ENOTFOUND, Message: "Address not found"}
)

// User is an account with a role.
type User struct {
	ID        pgtype.UUID
	Email     string
	FullName  string
	Phone     string
	Gender    string
	BirthDate pgtype.Date
	Role      string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// ProfileUpdate carries mutable profile fields.
type ProfileUpdate struct {
	FullName  string
	Phone     string
	Gender    string
	BirthDate pgtype.Date
}

// Address is a saved delivery address.
type Address struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	FullName  string
	Phone     string
	City      string
	Address   string
	IsDefault bool
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// AddressInput carries create/update fields for an address.
type AddressInput struct {
	FullName  string `json:"full_name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	City      string `json:"city" validate:"required"`
	Address   string `json:"address" validate:"required"`
	IsDefault bool   `json:"is_default"`
}

// Session is an authenticated device session identified by an opaque token.
type Session struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	Token     string
	ExpiresAt pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
}

// UserService provides registration, authentication and profile management.
type UserService interface {
	// Register creates an account and an initial session.
	Register(ctx context.Context, email, password, fullName string) (*User, *Session, error)

	// Login authenticates and creates a session. Banned users are rejected.
	Login(ctx context.Context, email, password string) (*User, *Session, error)

	// Logout revokes the session token.
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a bearer token to a user.
	Authenticate(ctx context.Context, token string) (*User, error)

	// GetProfile and UpdateProfile manage the user's own record.
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*User, error)

	// Admin operations.
	ListUsers(ctx context.Context) ([]User, error)
	SetRole(ctx context.Context, userID, role string) (*User, error)
}

// AddressService manages saved delivery addresses.
type AddressService interface {
	ListAddresses(ctx context.Context, userID string) ([]Address, error)

	// LatestAddress returns the most recently updated address, used to
	// pre-fill the checkout delivery form. Returns nil when none exist.
	LatestAddress(ctx context.Context, userID string) (*Address, error)

	CreateAddress(ctx context.Context, userID string, input AddressInput) (*Address, error)
	UpdateAddress(ctx context.Context, userID, addressID string, input AddressInput) (*Address, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
	SetDefaultAddress(ctx context.Context, userID, addressID string) error
}
