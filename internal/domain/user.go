package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrUserNotFound     = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrUserExists       = &Error{Code: ECONFLICT, Message: "A user with this email already exists"}
	ErrInvalidPassword  = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
	ErrEmailNotVerified = &Error{Code: EFORBIDDEN, Message: "Email has not been verified"}
	ErrInvalidOTP       = &Error{Code: EINVALID, Message: "Invalid verification code"}
)

// AccountType distinguishes customers from administrators.
const (
	AccountTypeCustomer = "customer"
	AccountTypeAdmin    = "admin"
)

// UserService provides account registration and authentication.
type UserService interface {
	// Register creates a new unverified account and sends a one-time
	// verification code to the email address.
	Register(ctx context.Context, input RegisterInput) (*User, error)

	// VerifyOTP checks the one-time code sent at registration and marks the
	// email as verified.
	VerifyOTP(ctx context.Context, email, code string) error

	// Authenticate verifies the credentials and returns the user. Accounts
	// with unverified email addresses cannot authenticate.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, id pgtype.UUID) (*User, error)

	// ListUsers returns every account, oldest first. Admin only; the route
	// layer enforces that.
	ListUsers(ctx context.Context) ([]User, error)
}

// User is an account holder. PasswordHash never leaves the service layer.
type User struct {
	ID            pgtype.UUID
	Email         string
	FirstName     string
	LastName      string
	Mobile        string
	AccountType   string
	EmailVerified bool
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

// IsAdmin reports whether the user has administrative privileges.
func (u *User) IsAdmin() bool { return u.AccountType == AccountTypeAdmin }

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Mobile    string
}
