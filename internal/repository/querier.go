package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the full query surface. *Queries implements it; services depend
// on it (or a subset) so tests can substitute fakes.
type Querier interface {
	// Carts
	CreateUserCart(ctx context.Context, userID pgtype.UUID) (Cart, error)
	CreateGuestCart(ctx context.Context, sessionID string) (Cart, error)
	GetCartByUserIDForUpdate(ctx context.Context, userID pgtype.UUID) (Cart, error)
	GetCartBySessionIDForUpdate(ctx context.Context, sessionID string) (Cart, error)
	GetCartItems(ctx context.Context, cartID pgtype.UUID) ([]CartItem, error)
	GetCartItem(ctx context.Context, arg GetCartItemParams) (CartItem, error)
	UpsertCartItemAdd(ctx context.Context, arg UpsertCartItemAddParams) (CartItem, error)
	SetCartItemQuantity(ctx context.Context, arg SetCartItemQuantityParams) (CartItem, error)
	DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error)
	CountCartItems(ctx context.Context, cartID pgtype.UUID) (int64, error)
	ReparentCartItem(ctx context.Context, arg ReparentCartItemParams) error
	DeleteCart(ctx context.Context, id pgtype.UUID) error

	// Users
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id pgtype.UUID) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	MarkUserVerified(ctx context.Context, id pgtype.UUID) error

	// Products
	ListProductsFiltered(ctx context.Context, arg ListProductsFilteredParams) ([]Product, error)
	GetProductByID(ctx context.Context, id pgtype.UUID) (Product, error)
	CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id pgtype.UUID) (int64, error)
}

var _ Querier = (*Queries)(nil)
