package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUserCart = `
INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) WHERE user_id IS NOT NULL
DO UPDATE SET updated_at = now()
RETURNING id, user_id, session_id, created_at, updated_at
`

// CreateUserCart gets or creates the cart for a user. The upsert makes the
// operation race-free under the partial unique index and locks the row for
// the remainder of the transaction.
func (q *Queries) CreateUserCart(ctx context.Context, userID pgtype.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, createUserCart, userID)
	var c Cart
	err := row.Scan(&c.ID, &c.UserID, &c.SessionID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const createGuestCart = `
INSERT INTO carts (session_id)
VALUES ($1)
ON CONFLICT (session_id) WHERE session_id IS NOT NULL
DO UPDATE SET updated_at = now()
RETURNING id, user_id, session_id, created_at, updated_at
`

// CreateGuestCart gets or creates the cart for a guest session.
func (q *Queries) CreateGuestCart(ctx context.Context, sessionID string) (Cart, error) {
	row := q.db.QueryRow(ctx, createGuestCart, sessionID)
	var c Cart
	err := row.Scan(&c.ID, &c.UserID, &c.SessionID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getCartByUserIDForUpdate = `
SELECT id, user_id, session_id, created_at, updated_at
FROM carts
WHERE user_id = $1
FOR UPDATE
`

func (q *Queries) GetCartByUserIDForUpdate(ctx context.Context, userID pgtype.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, getCartByUserIDForUpdate, userID)
	var c Cart
	err := row.Scan(&c.ID, &c.UserID, &c.SessionID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getCartBySessionIDForUpdate = `
SELECT id, user_id, session_id, created_at, updated_at
FROM carts
WHERE session_id = $1
FOR UPDATE
`

func (q *Queries) GetCartBySessionIDForUpdate(ctx context.Context, sessionID string) (Cart, error) {
	row := q.db.QueryRow(ctx, getCartBySessionIDForUpdate, sessionID)
	var c Cart
	err := row.Scan(&c.ID, &c.UserID, &c.SessionID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getCartItems = `
SELECT id, cart_id, product_id, quantity, created_at, updated_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at, id
`

func (q *Queries) GetCartItems(ctx context.Context, cartID pgtype.UUID) ([]CartItem, error) {
	rows, err := q.db.Query(ctx, getCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CartItem
	for rows.Next() {
		var i CartItem
		if err := rows.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Quantity, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getCartItem = `
SELECT id, cart_id, product_id, quantity, created_at, updated_at
FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`

type GetCartItemParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
}

func (q *Queries) GetCartItem(ctx context.Context, arg GetCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, getCartItem, arg.CartID, arg.ProductID)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Quantity, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const upsertCartItemAdd = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
RETURNING id, cart_id, product_id, quantity, created_at, updated_at
`

type UpsertCartItemAddParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Quantity  int32
}

// UpsertCartItemAdd inserts a line item or increments the existing one.
// The additive conflict clause makes concurrent adds sum instead of racing.
func (q *Queries) UpsertCartItemAdd(ctx context.Context, arg UpsertCartItemAddParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, upsertCartItemAdd, arg.CartID, arg.ProductID, arg.Quantity)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Quantity, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const setCartItemQuantity = `
UPDATE cart_items
SET quantity = $3, updated_at = now()
WHERE cart_id = $1 AND product_id = $2
RETURNING id, cart_id, product_id, quantity, created_at, updated_at
`

type SetCartItemQuantityParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Quantity  int32
}

func (q *Queries) SetCartItemQuantity(ctx context.Context, arg SetCartItemQuantityParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, setCartItemQuantity, arg.CartID, arg.ProductID, arg.Quantity)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Quantity, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteCartItem = `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`

type DeleteCartItemParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
}

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartItem, arg.CartID, arg.ProductID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countCartItems = `
SELECT count(*) FROM cart_items WHERE cart_id = $1
`

func (q *Queries) CountCartItems(ctx context.Context, cartID pgtype.UUID) (int64, error) {
	row := q.db.QueryRow(ctx, countCartItems, cartID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const reparentCartItem = `
UPDATE cart_items
SET cart_id = $2, updated_at = now()
WHERE id = $1
`

type ReparentCartItemParams struct {
	ID     pgtype.UUID
	CartID pgtype.UUID
}

// ReparentCartItem moves a line item to another cart, preserving its id.
func (q *Queries) ReparentCartItem(ctx context.Context, arg ReparentCartItemParams) error {
	_, err := q.db.Exec(ctx, reparentCartItem, arg.ID, arg.CartID)
	return err
}

const deleteCart = `
DELETE FROM carts WHERE id = $1
`

// DeleteCart removes a cart; its items go with it via ON DELETE CASCADE.
func (q *Queries) DeleteCart(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, deleteCart, id)
	return err
}
