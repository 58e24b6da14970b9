package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/auth"
	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/repository"
	"github.com/denizgunduz/pazar/internal/telemetry"
)

// sessionTTL is how long a login stays valid without re-authenticating.
const sessionTTL = 30 * 24 * time.Hour

type userService struct {
	repo   repository.Querier
	logger *slog.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(repo repository.Querier, logger *slog.Logger) domain.UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Register(ctx context.Context, email, password, fullName string) (*domain.User, *domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, domain.Invalid("user.register", "A valid email address is required")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, nil, domain.Invalid("user.register", "Full name is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, nil, domain.Invalid("user.register", "Password must be at least 8 characters")
		}
		return nil, nil, domain.Internal(err, "user.register", "Failed to create account")
	}

	user, err := s.repo.CreateUser(ctx, email, hash, strings.TrimSpace(fullName))
	if err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("user registered", slog.String("email", email))
	telemetry.RecordSignup()
	return user, session, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, hash, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			telemetry.RecordLogin(false)
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := auth.VerifyPassword(password, hash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			telemetry.RecordLogin(false)
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, domain.Internal(err, "user.login", "Failed to verify credentials")
	}
	if user.Role == domain.RoleBanned {
		return nil, nil, domain.ErrUserBanned
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	telemetry.RecordLogin(true)
	return user, session, nil
}

func (s *userService) createSession(ctx context.Context, userID pgtype.UUID) (*domain.Session, error) {
	token, err := auth.GenerateToken()
	if err != nil {
		return nil, domain.Internal(err, "user.session", "Failed to create session")
	}
	var expires pgtype.Timestamptz
	if err := expires.Scan(time.Now().Add(sessionTTL)); err != nil {
		return nil, domain.Internal(err, "user.session", "Failed to create session")
	}
	return s.repo.CreateSession(ctx, userID, token, expires)
}

func (s *userService) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

func (s *userService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	session, err := s.repo.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleBanned {
		return nil, domain.ErrUserBanned
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetUserByID(ctx, uid)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(update.FullName) == "" {
		return nil, domain.Invalid("user.update", "Full name is required")
	}
	return s.repo.UpdateUserProfile(ctx, uid, update)
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *userService) SetRole(ctx context.Context, userID, role string) (*domain.User, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	switch role {
	case domain.RoleCustomer, domain.RoleAdmin, domain.RoleBanned:
	default:
		return nil, domain.Invalid("user.role", "Unknown role")
	}
	return s.repo.UpdateUserRole(ctx, uid, role)
}
