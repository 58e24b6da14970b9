// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/denizgunduz/pazar/internal/auth"
	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/repository"
)

// AdminConfig contains configuration for the initial admin user.
type AdminConfig struct {
	Email    string
	Password string
	FullName string
}

// Validate checks that the admin configuration is valid.
func (c *AdminConfig) Validate() error {
	if c.Email == "" {
		return errors.New("admin email is required")
	}
	if c.Password == "" {
		return errors.New("admin password is required")
	}
	if len(c.Password) < 12 {
		return errors.New("admin password must be at least 12 characters")
	}
	return nil
}

// EnsureAdmin creates the initial admin user if it doesn't exist.
// This function is idempotent - safe to call on every startup.
//
// If the admin user already exists (by email), it returns without error.
// If cfg has an empty Email or Password, it logs a warning and skips.
func EnsureAdmin(ctx context.Context, repo repository.Querier, cfg AdminConfig, logger *slog.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping admin creation - PAZAR_ADMIN_EMAIL or PAZAR_ADMIN_PASSWORD not set",
			"hint", "Set these environment variables to create an admin user on first startup",
		)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("bootstrap: invalid admin config: %w", err)
	}

	if _, _, err := repo.GetUserByEmail(ctx, cfg.Email); err == nil {
		logger.Debug("bootstrap: admin user already exists", "email", cfg.Email)
		return nil
	} else if !domain.IsCode(err, domain.ENOTFOUND) {
		return fmt.Errorf("bootstrap: admin lookup failed: %w", err)
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("bootstrap: failed to hash admin password: %w", err)
	}

	name := cfg.FullName
	if name == "" {
		name = "Administrator"
	}

	user, err := repo.CreateUser(ctx, cfg.Email, hash, name)
	if err != nil {
		// Another instance may have created it between the lookup and here.
		if domain.IsCode(err, domain.ECONFLICT) {
			return nil
		}
		return fmt.Errorf("bootstrap: failed to create admin user: %w", err)
	}

	if _, err := repo.UpdateUserRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		return fmt.Errorf("bootstrap: failed to grant admin role: %w", err)
	}

	logger.Info("bootstrap: created initial admin user", "email", cfg.Email)
	return nil
}
