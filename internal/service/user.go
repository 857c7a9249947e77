package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/njordlabs/njord/internal/auth"
	"github.com/njordlabs/njord/internal/domain"
	"github.com/njordlabs/njord/internal/email"
	"github.com/njordlabs/njord/internal/repository"
	"github.com/njordlabs/njord/internal/telemetry"
)

type userService struct {
	store  Store
	sender email.Sender
}

// Compile-time check that userService implements domain.UserService.
var _ domain.UserService = (*userService)(nil)

// NewUserService creates a new UserService instance. The sender is used for
// one-time verification codes at signup.
func NewUserService(store Store, sender email.Sender) domain.UserService {
	return &userService{store: store, sender: sender}
}

// Register creates a new unverified account and emails a verification code.
func (s *userService) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	addr := strings.TrimSpace(input.Email)
	if addr == "" || !strings.Contains(addr, "@") {
		return nil, domain.Invalid("user.register", "a valid email address is required")
	}

	_, err := s.store.GetUserByEmail(ctx, addr)
	if err == nil {
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.Invalid("user.register", err.Error())
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	user, err := s.store.CreateUser(ctx, repository.CreateUserParams{
		Email:        addr,
		PasswordHash: pgtype.Text{String: passwordHash, Valid: true},
		FirstName:    textOrNull(input.FirstName),
		LastName:     textOrNull(input.LastName),
		Mobile:       textOrNull(input.Mobile),
		OtpCode:      pgtype.Text{String: otp, Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := s.sender.Send(ctx, email.NewOTPEmail(addr, otp)); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	telemetry.Signups.Inc()
	return mapUser(user), nil
}

// VerifyOTP checks the code sent at registration and marks the email
// verified. Verifying an already-verified account is a no-op success.
func (s *userService) VerifyOTP(ctx context.Context, addr, code string) error {
	user, err := s.store.GetUserByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.EmailVerified {
		return nil
	}
	if !user.OtpCode.Valid || user.OtpCode.String != code {
		return domain.ErrInvalidOTP
	}

	if err := s.store.MarkUserVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	telemetry.EmailsVerified.Inc()
	return nil
}

// Authenticate verifies email/password and returns the user if valid.
func (s *userService) Authenticate(ctx context.Context, addr, password string) (*domain.User, error) {
	user, err := s.store.GetUserByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.PasswordHash.Valid {
		telemetry.LoginsFailed.Inc()
		return nil, domain.ErrInvalidPassword
	}
	if err := auth.VerifyPassword(password, user.PasswordHash.String); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			telemetry.LoginsFailed.Inc()
			return nil, domain.ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	telemetry.Logins.Inc()
	return mapUser(user), nil
}

// GetUserByID retrieves a user by id.
func (s *userService) GetUserByID(ctx context.Context, id pgtype.UUID) (*domain.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return mapUser(user), nil
}

// ListUsers returns every account, oldest first.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = *mapUser(row)
	}
	return users, nil
}

// generateOTP returns a 6-digit one-time verification code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func mapUser(u repository.User) *domain.User {
	return &domain.User{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName.String,
		LastName:      u.LastName.String,
		Mobile:        u.Mobile.String,
		AccountType:   u.AccountType,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
