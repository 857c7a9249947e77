package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/njordlabs/njord/internal/repository"
)

// fakeStore is an in-memory Store for service tests. ExecTx serializes the
// whole transaction under one mutex, mirroring the row locks the real store
// takes. There is no rollback: the services only mutate state after their
// guards have passed, so the happy and error paths both leave the fake
// consistent.
type fakeStore struct {
	mu sync.Mutex
	q  fakeQueries
}

func newFakeStore() *fakeStore {
	return &fakeStore{q: fakeQueries{
		users:    map[pgtype.UUID]*repository.User{},
		products: map[pgtype.UUID]*repository.Product{},
	}}
}

func (f *fakeStore) ExecTx(_ context.Context, fn func(repository.Querier) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(&f.q)
}

// fakeQueries holds the state and implements repository.Querier without
// locking; fakeStore wraps every direct call in the mutex.
type fakeQueries struct {
	carts    []*repository.Cart
	items    []*repository.CartItem
	users    map[pgtype.UUID]*repository.User
	products map[pgtype.UUID]*repository.Product
}

func newID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func now() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now(), Valid: true}
}

// Carts

func (f *fakeQueries) CreateUserCart(_ context.Context, userID pgtype.UUID) (repository.Cart, error) {
	for _, c := range f.carts {
		if c.UserID == userID && c.UserID.Valid {
			c.UpdatedAt = now()
			return *c, nil
		}
	}
	c := &repository.Cart{ID: newID(), UserID: userID, CreatedAt: now(), UpdatedAt: now()}
	f.carts = append(f.carts, c)
	return *c, nil
}

func (f *fakeQueries) CreateGuestCart(_ context.Context, sessionID string) (repository.Cart, error) {
	for _, c := range f.carts {
		if c.SessionID.Valid && c.SessionID.String == sessionID {
			c.UpdatedAt = now()
			return *c, nil
		}
	}
	c := &repository.Cart{
		ID:        newID(),
		SessionID: pgtype.Text{String: sessionID, Valid: true},
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	f.carts = append(f.carts, c)
	return *c, nil
}

func (f *fakeQueries) GetCartByUserIDForUpdate(_ context.Context, userID pgtype.UUID) (repository.Cart, error) {
	for _, c := range f.carts {
		if c.UserID == userID && c.UserID.Valid {
			return *c, nil
		}
	}
	return repository.Cart{}, pgx.ErrNoRows
}

func (f *fakeQueries) GetCartBySessionIDForUpdate(_ context.Context, sessionID string) (repository.Cart, error) {
	for _, c := range f.carts {
		if c.SessionID.Valid && c.SessionID.String == sessionID {
			return *c, nil
		}
	}
	return repository.Cart{}, pgx.ErrNoRows
}

func (f *fakeQueries) GetCartItems(_ context.Context, cartID pgtype.UUID) ([]repository.CartItem, error) {
	var out []repository.CartItem
	for _, i := range f.items {
		if i.CartID == cartID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *fakeQueries) GetCartItem(_ context.Context, arg repository.GetCartItemParams) (repository.CartItem, error) {
	for _, i := range f.items {
		if i.CartID == arg.CartID && i.ProductID == arg.ProductID {
			return *i, nil
		}
	}
	return repository.CartItem{}, pgx.ErrNoRows
}

func (f *fakeQueries) UpsertCartItemAdd(_ context.Context, arg repository.UpsertCartItemAddParams) (repository.CartItem, error) {
	for _, i := range f.items {
		if i.CartID == arg.CartID && i.ProductID == arg.ProductID {
			i.Quantity += arg.Quantity
			i.UpdatedAt = now()
			return *i, nil
		}
	}
	i := &repository.CartItem{
		ID:        newID(),
		CartID:    arg.CartID,
		ProductID: arg.ProductID,
		Quantity:  arg.Quantity,
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	f.items = append(f.items, i)
	return *i, nil
}

func (f *fakeQueries) SetCartItemQuantity(_ context.Context, arg repository.SetCartItemQuantityParams) (repository.CartItem, error) {
	for _, i := range f.items {
		if i.CartID == arg.CartID && i.ProductID == arg.ProductID {
			i.Quantity = arg.Quantity
			i.UpdatedAt = now()
			return *i, nil
		}
	}
	return repository.CartItem{}, pgx.ErrNoRows
}

func (f *fakeQueries) DeleteCartItem(_ context.Context, arg repository.DeleteCartItemParams) (int64, error) {
	var affected int64
	kept := f.items[:0]
	for _, i := range f.items {
		if i.CartID == arg.CartID && i.ProductID == arg.ProductID {
			affected++
			continue
		}
		kept = append(kept, i)
	}
	f.items = kept
	return affected, nil
}

func (f *fakeQueries) CountCartItems(_ context.Context, cartID pgtype.UUID) (int64, error) {
	var count int64
	for _, i := range f.items {
		if i.CartID == cartID {
			count++
		}
	}
	return count, nil
}

func (f *fakeQueries) ReparentCartItem(_ context.Context, arg repository.ReparentCartItemParams) error {
	for _, i := range f.items {
		if i.ID == arg.ID {
			i.CartID = arg.CartID
			i.UpdatedAt = now()
			return nil
		}
	}
	return nil
}

func (f *fakeQueries) DeleteCart(_ context.Context, id pgtype.UUID) error {
	kept := f.carts[:0]
	for _, c := range f.carts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.carts = kept

	// ON DELETE CASCADE
	keptItems := f.items[:0]
	for _, i := range f.items {
		if i.CartID != id {
			keptItems = append(keptItems, i)
		}
	}
	f.items = keptItems
	return nil
}

// Users

func (f *fakeQueries) CreateUser(_ context.Context, arg repository.CreateUserParams) (repository.User, error) {
	u := &repository.User{
		ID:           newID(),
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		FirstName:    arg.FirstName,
		LastName:     arg.LastName,
		Mobile:       arg.Mobile,
		AccountType:  "customer",
		OtpCode:      arg.OtpCode,
		CreatedAt:    now(),
		UpdatedAt:    now(),
	}
	f.users[u.ID] = u
	return *u, nil
}

func (f *fakeQueries) CreateAdminUser(_ context.Context, arg repository.CreateAdminUserParams) (repository.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, arg.Email) {
			return repository.User{}, pgx.ErrNoRows
		}
	}
	u := &repository.User{
		ID:            newID(),
		Email:         arg.Email,
		PasswordHash:  arg.PasswordHash,
		FirstName:     arg.FirstName,
		LastName:      arg.LastName,
		AccountType:   "admin",
		EmailVerified: true,
		CreatedAt:     now(),
		UpdatedAt:     now(),
	}
	f.users[u.ID] = u
	return *u, nil
}

func (f *fakeQueries) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return *u, nil
		}
	}
	return repository.User{}, pgx.ErrNoRows
}

func (f *fakeQueries) GetUserByID(_ context.Context, id pgtype.UUID) (repository.User, error) {
	if u, ok := f.users[id]; ok {
		return *u, nil
	}
	return repository.User{}, pgx.ErrNoRows
}

func (f *fakeQueries) ListUsers(_ context.Context) ([]repository.User, error) {
	out := make([]repository.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Time.Equal(out[j].CreatedAt.Time) {
			return out[i].CreatedAt.Time.Before(out[j].CreatedAt.Time)
		}
		return out[i].Email < out[j].Email
	})
	return out, nil
}

func (f *fakeQueries) MarkUserVerified(_ context.Context, id pgtype.UUID) error {
	if u, ok := f.users[id]; ok {
		u.EmailVerified = true
		u.OtpCode = pgtype.Text{}
		u.UpdatedAt = now()
	}
	return nil
}

// Products

func (f *fakeQueries) ListProductsFiltered(_ context.Context, arg repository.ListProductsFilteredParams) ([]repository.Product, error) {
	var out []repository.Product
	for _, p := range f.products {
		if arg.Search.Valid && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(arg.Search.String)) {
			continue
		}
		if arg.MainCategory.Valid && p.MainCategory != arg.MainCategory.String {
			continue
		}
		if arg.SubCategory.Valid && p.SubCategory != arg.SubCategory.String {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeQueries) GetProductByID(_ context.Context, id pgtype.UUID) (repository.Product, error) {
	if p, ok := f.products[id]; ok {
		return *p, nil
	}
	return repository.Product{}, pgx.ErrNoRows
}

func (f *fakeQueries) CreateProduct(_ context.Context, arg repository.CreateProductParams) (repository.Product, error) {
	p := &repository.Product{
		ID:           newID(),
		Name:         arg.Name,
		Description:  arg.Description,
		PriceCents:   arg.PriceCents,
		Stock:        arg.Stock,
		MainCategory: arg.MainCategory,
		SubCategory:  arg.SubCategory,
		ImageUrls:    arg.ImageUrls,
		CreatedAt:    now(),
		UpdatedAt:    now(),
	}
	f.products[p.ID] = p
	return *p, nil
}

func (f *fakeQueries) UpdateProduct(_ context.Context, arg repository.UpdateProductParams) (repository.Product, error) {
	p, ok := f.products[arg.ID]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	p.Name = arg.Name
	p.Description = arg.Description
	p.PriceCents = arg.PriceCents
	p.Stock = arg.Stock
	p.MainCategory = arg.MainCategory
	p.SubCategory = arg.SubCategory
	p.ImageUrls = arg.ImageUrls
	p.UpdatedAt = now()
	return *p, nil
}

func (f *fakeQueries) DeleteProduct(_ context.Context, id pgtype.UUID) (int64, error) {
	if _, ok := f.products[id]; !ok {
		return 0, nil
	}
	delete(f.products, id)
	return 1, nil
}

// Locked pass-through so direct (non-transactional) calls stay race-free.

func (f *fakeStore) CreateUserCart(ctx context.Context, userID pgtype.UUID) (repository.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.CreateUserCart(ctx, userID)
}

func (f *fakeStore) CreateGuestCart(ctx context.Context, sessionID string) (repository.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.CreateGuestCart(ctx, sessionID)
}

func (f *fakeStore) GetCartByUserIDForUpdate(ctx context.Context, userID pgtype.UUID) (repository.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.GetCartByUserIDForUpdate(ctx, userID)
}

func (f *fakeStore) GetCartBySessionIDForUpdate(ctx context.Context, sessionID string) (repository.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.GetCartBySessionIDForUpdate(ctx, sessionID)
}

func (f *fakeStore) GetCartItems(ctx context.Context, cartID pgtype.UUID) ([]repository.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.GetCartItems(ctx, cartID)
}

func (f *fakeStore) GetCartItem(ctx context.Context, arg repository.GetCartItemParams) (repository.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.GetCartItem(ctx, arg)
}

func (f *fakeStore) UpsertCartItemAdd(ctx context.Context, arg repository.UpsertCartItemAddParams) (repository.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.UpsertCartItemAdd(ctx, arg)
}

func (f *fakeStore) SetCartItemQuantity(ctx context.Context, arg repository.SetCartItemQuantityParams) (repository.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.SetCartItemQuantity(ctx, arg)
}

func (f *fakeStore) DeleteCartItem(ctx context.Context, arg repository.DeleteCartItemParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.DeleteCartItem(ctx, arg)
}

func (f *fakeStore) CountCartItems(ctx context.Context, cartID pgtype.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.CountCartItems(ctx, cartID)
}

func (f *fakeStore) ReparentCartItem(ctx context.Context, arg repository.ReparentCartItemParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.ReparentCartItem(ctx, arg)
}

func (f *fakeStore) DeleteCart(ctx context.Context, id pgtype.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.DeleteCart(ctx, id)
}

func (f *fakeStore) CreateUser(ctx context.Context, arg repository.CreateUserParams) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.CreateUser(ctx, arg)
}

func (f *fakeStore) CreateAdminUser(ctx context.Context, arg repository.CreateAdminUserParams) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.CreateAdminUser(ctx, arg)
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.GetUserByEmail(ctx, email)
}

func (f *fakeStore) GetUserByID(ctx context.Context, id pgtype.UUID) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.GetUserByID(ctx, id)
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.ListUsers(ctx)
}

func (f *fakeStore) MarkUserVerified(ctx context.Context, id pgtype.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.MarkUserVerified(ctx, id)
}

func (f *fakeStore) ListProductsFiltered(ctx context.Context, arg repository.ListProductsFilteredParams) ([]repository.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.ListProductsFiltered(ctx, arg)
}

func (f *fakeStore) GetProductByID(ctx context.Context, id pgtype.UUID) (repository.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.GetProductByID(ctx, id)
}

func (f *fakeStore) CreateProduct(ctx context.Context, arg repository.CreateProductParams) (repository.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.CreateProduct(ctx, arg)
}

func (f *fakeStore) UpdateProduct(ctx context.Context, arg repository.UpdateProductParams) (repository.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.UpdateProduct(ctx, arg)
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id pgtype.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.DeleteProduct(ctx, id)
}

var _ Store = (*fakeStore)(nil)
