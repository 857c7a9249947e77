package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID            pgtype.UUID
	Email         string
	PasswordHash  pgtype.Text
	FirstName     pgtype.Text
	LastName      pgtype.Text
	Mobile        pgtype.Text
	AccountType   string
	EmailVerified bool
	OtpCode       pgtype.Text
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type Product struct {
	ID           pgtype.UUID
	Name         string
	Description  string
	PriceCents   int64
	Stock        int32
	MainCategory string
	SubCategory  string
	ImageUrls    []string
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type Cart struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	SessionID pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type CartItem struct {
	ID        pgtype.UUID
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Quantity  int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
