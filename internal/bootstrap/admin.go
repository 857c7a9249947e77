// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/njordlabs/njord/internal/auth"
	"github.com/njordlabs/njord/internal/repository"
)

// AdminConfig contains configuration for the initial admin user.
type AdminConfig struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
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

// EnsureAdminUser creates the initial admin user if it doesn't exist. It is
// idempotent and safe to call on every startup. With no configuration it logs
// a warning and skips, which allows running without an admin in dev.
func EnsureAdminUser(ctx context.Context, repo repository.Querier, cfg *AdminConfig, logger *slog.Logger) error {
	if cfg == nil || cfg.Email == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping admin creation - ADMIN_EMAIL or ADMIN_PASSWORD not set",
			"hint", "Set these environment variables to create an admin user on first startup",
		)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	passwordHash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	firstName := cfg.FirstName
	if firstName == "" {
		firstName = "Admin"
	}
	lastName := cfg.LastName
	if lastName == "" {
		lastName = "User"
	}

	user, err := repo.CreateAdminUser(ctx, repository.CreateAdminUserParams{
		Email:        cfg.Email,
		PasswordHash: pgtype.Text{String: passwordHash, Valid: true},
		FirstName:    pgtype.Text{String: firstName, Valid: true},
		LastName:     pgtype.Text{String: lastName, Valid: true},
	})
	if err != nil {
		// ON CONFLICT DO NOTHING returns no row when the account exists.
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info("bootstrap: admin user already exists", "email", cfg.Email)
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("bootstrap: admin user created",
		"email", cfg.Email,
		"user_id", fmt.Sprintf("%x", user.ID.Bytes),
	)
	return nil
}
