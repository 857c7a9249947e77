package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// CartService provides business logic for shopping cart operations.
// Every operation is keyed by an Identity (user XOR guest session); the
// semantics are identical for both addressing modes.
type CartService interface {
	// GetCart retrieves the cart for the identity, creating an empty one if
	// none exists. It never fails with a not-found error.
	GetCart(ctx context.Context, id Identity) (*CartSummary, error)

	// AddItem adds quantity of a product to the cart, creating the cart
	// and/or line item as needed. Adding an existing product increments its
	// quantity; it never overwrites.
	AddItem(ctx context.Context, id Identity, productID pgtype.UUID, quantity int32) (*CartSummary, error)

	// UpdateItem replaces the quantity of an existing line item.
	// A quantity <= 0 is equivalent to RemoveItem. The cart and item must
	// already exist.
	UpdateItem(ctx context.Context, id Identity, productID pgtype.UUID, quantity int32) (*CartSummary, error)

	// DecrementItem lowers an existing line item's quantity by one.
	// At quantity 1 it is equivalent to RemoveItem.
	DecrementItem(ctx context.Context, id Identity, productID pgtype.UUID) (*CartSummary, error)

	// RemoveItem deletes a line item. Removing the last item deletes the
	// cart as well, in which case the returned summary is nil with a nil
	// error; callers must treat that as "cart no longer exists", not as a
	// failure.
	RemoveItem(ctx context.Context, id Identity, productID pgtype.UUID) (*CartSummary, error)

	// ClearCart deletes the cart and all of its items. Clearing an absent
	// cart is a no-op success.
	ClearCart(ctx context.Context, id Identity) error

	// MergeGuestCart folds the guest session's cart into the user's cart:
	// quantities are summed for shared products, remaining guest items are
	// re-parented, and the guest cart is deleted. Merging with no guest cart
	// is a no-op returning the user's cart.
	MergeGuestCart(ctx context.Context, sessionID string, userID pgtype.UUID) (*CartSummary, error)
}

// Cart is the aggregate root for a single identity's shopping cart.
// Exactly one of UserID and SessionID is set.
type Cart struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	SessionID pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// Owner returns the identity that owns this cart.
func (c Cart) Owner() Identity {
	if c.UserID.Valid {
		return ForUser(c.UserID)
	}
	return ForGuest(c.SessionID.String)
}

// CartItem is a single product line within a cart. Product ids are opaque to
// the cart subsystem; existence is not validated here.
type CartItem struct {
	ID        pgtype.UUID
	ProductID pgtype.UUID
	Quantity  int32
}

// CartSummary aggregates a cart with its line items.
type CartSummary struct {
	Cart      Cart
	Items     []CartItem
	ItemCount int
}
