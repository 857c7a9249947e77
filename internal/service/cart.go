package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/njordlabs/njord/internal/domain"
	"github.com/njordlabs/njord/internal/repository"
	"github.com/njordlabs/njord/internal/telemetry"
)

// Store is the persistence surface the services need: the full query set plus
// transactional execution. *repository.Store satisfies it.
type Store interface {
	repository.Querier
	ExecTx(ctx context.Context, fn func(repository.Querier) error) error
}

type cartService struct {
	store Store
}

// Compile-time check that cartService implements domain.CartService.
var _ domain.CartService = (*cartService)(nil)

// NewCartService creates a new CartService instance.
func NewCartService(store Store) domain.CartService {
	return &cartService{store: store}
}

// GetCart retrieves the cart for the identity, creating an empty one if none
// exists.
func (s *cartService) GetCart(ctx context.Context, id domain.Identity) (*domain.CartSummary, error) {
	var summary *domain.CartSummary
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := getOrCreateCart(ctx, q, id)
		if err != nil {
			return fmt.Errorf("failed to get or create cart: %w", err)
		}
		summary, err = summarize(ctx, q, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// AddItem adds a product to the cart, creating the cart if needed. Adding a
// product that is already in the cart increments its quantity.
func (s *cartService) AddItem(ctx context.Context, id domain.Identity, productID pgtype.UUID, quantity int32) (*domain.CartSummary, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	var summary *domain.CartSummary
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := getOrCreateCart(ctx, q, id)
		if err != nil {
			return fmt.Errorf("failed to get or create cart: %w", err)
		}

		if _, err := q.UpsertCartItemAdd(ctx, repository.UpsertCartItemAddParams{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}); err != nil {
			return fmt.Errorf("failed to add cart item: %w", err)
		}

		summary, err = summarize(ctx, q, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	telemetry.CartItemsAdded.Add(float64(quantity))
	return summary, nil
}

// UpdateItem replaces the quantity of an existing line item. A non-positive
// quantity degrades to RemoveItem; the two calls are exactly equivalent.
func (s *cartService) UpdateItem(ctx context.Context, id domain.Identity, productID pgtype.UUID, quantity int32) (*domain.CartSummary, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, id, productID)
	}

	var summary *domain.CartSummary
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := lockCart(ctx, q, id)
		if err != nil {
			return err
		}

		if _, err := q.SetCartItemQuantity(ctx, repository.SetCartItemQuantityParams{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrCartItemNotFound
			}
			return fmt.Errorf("failed to update cart item quantity: %w", err)
		}

		summary, err = summarize(ctx, q, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// DecrementItem lowers an existing line item's quantity by one. At quantity 1
// the item is removed instead, with the same outcome as RemoveItem.
func (s *cartService) DecrementItem(ctx context.Context, id domain.Identity, productID pgtype.UUID) (*domain.CartSummary, error) {
	var summary *domain.CartSummary
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := lockCart(ctx, q, id)
		if err != nil {
			return err
		}

		item, err := q.GetCartItem(ctx, repository.GetCartItemParams{
			CartID:    cart.ID,
			ProductID: productID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrCartItemNotFound
			}
			return fmt.Errorf("failed to get cart item: %w", err)
		}

		if item.Quantity <= 1 {
			summary, err = removeItemLocked(ctx, q, cart, productID)
			return err
		}

		if _, err := q.SetCartItemQuantity(ctx, repository.SetCartItemQuantityParams{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  item.Quantity - 1,
		}); err != nil {
			return fmt.Errorf("failed to decrement cart item: %w", err)
		}

		summary, err = summarize(ctx, q, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// RemoveItem deletes a line item. When the last item goes, the cart aggregate
// is deleted too and the returned summary is nil with a nil error.
func (s *cartService) RemoveItem(ctx context.Context, id domain.Identity, productID pgtype.UUID) (*domain.CartSummary, error) {
	var summary *domain.CartSummary
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := lockCart(ctx, q, id)
		if err != nil {
			return err
		}
		summary, err = removeItemLocked(ctx, q, cart, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ClearCart deletes the cart and all of its items. Clearing an absent cart is
// a no-op success.
func (s *cartService) ClearCart(ctx context.Context, id domain.Identity) error {
	cleared := false
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := lockCart(ctx, q, id)
		if err != nil {
			if errors.Is(err, domain.ErrCartNotFound) {
				return nil
			}
			return err
		}
		if err := q.DeleteCart(ctx, cart.ID); err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		cleared = true
		return nil
	})
	if err != nil {
		return err
	}
	if cleared {
		telemetry.CartsCleared.Inc()
	}
	return nil
}

// MergeGuestCart folds the guest cart into the user's cart within a single
// transaction: shared products have their quantities summed, the rest are
// re-parented, and the guest cart is deleted. With no guest cart the call is
// a no-op returning the user's cart, which also makes a repeated merge safe.
//
// Lock ordering: the guest cart is locked before the user cart. No other
// operation locks more than one cart, so this cannot deadlock.
func (s *cartService) MergeGuestCart(ctx context.Context, sessionID string, userID pgtype.UUID) (*domain.CartSummary, error) {
	var (
		summary *domain.CartSummary
		merged  bool
	)
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		guest, err := q.GetCartBySessionIDForUpdate(ctx, sessionID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to get guest cart: %w", err)
		}
		hasGuest := err == nil

		user, err := q.CreateUserCart(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get or create user cart: %w", err)
		}

		if !hasGuest {
			summary, err = summarize(ctx, q, user)
			return err
		}

		items, err := q.GetCartItems(ctx, guest.ID)
		if err != nil {
			return fmt.Errorf("failed to get guest cart items: %w", err)
		}

		for _, item := range items {
			existing, err := q.GetCartItem(ctx, repository.GetCartItemParams{
				CartID:    user.ID,
				ProductID: item.ProductID,
			})
			switch {
			case err == nil:
				// Same product in both carts: sum the quantities. The guest
				// row is left behind and goes away with the guest cart.
				if _, err := q.SetCartItemQuantity(ctx, repository.SetCartItemQuantityParams{
					CartID:    user.ID,
					ProductID: item.ProductID,
					Quantity:  existing.Quantity + item.Quantity,
				}); err != nil {
					return fmt.Errorf("failed to sum merged quantity: %w", err)
				}
			case errors.Is(err, pgx.ErrNoRows):
				if err := q.ReparentCartItem(ctx, repository.ReparentCartItemParams{
					ID:     item.ID,
					CartID: user.ID,
				}); err != nil {
					return fmt.Errorf("failed to re-parent cart item: %w", err)
				}
			default:
				return fmt.Errorf("failed to get user cart item: %w", err)
			}
		}

		if err := q.DeleteCart(ctx, guest.ID); err != nil {
			return fmt.Errorf("failed to delete guest cart: %w", err)
		}
		merged = true

		summary, err = summarize(ctx, q, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	if merged {
		telemetry.CartsMerged.Inc()
	}
	return summary, nil
}

// getOrCreateCart returns the identity's cart, creating it if absent. The
// underlying upsert also locks the row for the rest of the transaction.
func getOrCreateCart(ctx context.Context, q repository.Querier, id domain.Identity) (repository.Cart, error) {
	if id.IsUser() {
		return q.CreateUserCart(ctx, id.UserID())
	}
	return q.CreateGuestCart(ctx, id.SessionID())
}

// lockCart loads the identity's cart with a row lock, or ErrCartNotFound.
func lockCart(ctx context.Context, q repository.Querier, id domain.Identity) (repository.Cart, error) {
	var (
		cart repository.Cart
		err  error
	)
	if id.IsUser() {
		cart, err = q.GetCartByUserIDForUpdate(ctx, id.UserID())
	} else {
		cart, err = q.GetCartBySessionIDForUpdate(ctx, id.SessionID())
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Cart{}, domain.ErrCartNotFound
		}
		return repository.Cart{}, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// removeItemLocked deletes a line item from an already-locked cart. Deleting
// the last item deletes the cart and yields a nil summary.
func removeItemLocked(ctx context.Context, q repository.Querier, cart repository.Cart, productID pgtype.UUID) (*domain.CartSummary, error) {
	affected, err := q.DeleteCartItem(ctx, repository.DeleteCartItemParams{
		CartID:    cart.ID,
		ProductID: productID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrCartItemNotFound
	}

	remaining, err := q.CountCartItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cart items: %w", err)
	}
	if remaining == 0 {
		// An empty cart is not a valid persisted state.
		if err := q.DeleteCart(ctx, cart.ID); err != nil {
			return nil, fmt.Errorf("failed to delete empty cart: %w", err)
		}
		return nil, nil
	}

	return summarize(ctx, q, cart)
}

// summarize builds the view model for a cart and its items.
func summarize(ctx context.Context, q repository.Querier, cart repository.Cart) (*domain.CartSummary, error) {
	items, err := q.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	cartItems := make([]domain.CartItem, 0, len(items))
	itemCount := 0
	for _, item := range items {
		itemCount += int(item.Quantity)
		cartItems = append(cartItems, domain.CartItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return &domain.CartSummary{
		Cart: domain.Cart{
			ID:        cart.ID,
			UserID:    cart.UserID,
			SessionID: cart.SessionID,
			CreatedAt: cart.CreatedAt,
			UpdatedAt: cart.UpdatedAt,
		},
		Items:     cartItems,
		ItemCount: itemCount,
	}, nil
}
