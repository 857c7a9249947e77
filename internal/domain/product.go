package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

var ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}

// ProductService provides catalog operations. The cart subsystem does not
// consume this service; product ids cross that boundary opaquely.
type ProductService interface {
	// ListProducts returns products matching the filter. An empty filter
	// returns the full catalog.
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)

	// GetProduct retrieves a single product by id.
	GetProduct(ctx context.Context, id pgtype.UUID) (*Product, error)

	// CreateProduct adds a product to the catalog. Admin only.
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)

	// UpdateProduct replaces a product's attributes. Admin only.
	UpdateProduct(ctx context.Context, id pgtype.UUID, input ProductInput) (*Product, error)

	// DeleteProduct removes a product from the catalog. Admin only.
	DeleteProduct(ctx context.Context, id pgtype.UUID) error
}

// Product is a catalog entry.
type Product struct {
	ID           pgtype.UUID
	Name         string
	Description  string
	PriceCents   int64
	Stock        int32
	MainCategory string
	SubCategory  string
	ImageURLs    []string
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

// ProductFilter narrows a catalog listing. Search takes precedence over the
// category filters when both are supplied.
type ProductFilter struct {
	Search       string
	MainCategory string
	SubCategory  string
}

// ProductInput carries the caller-settable attributes for create/update.
type ProductInput struct {
	Name         string
	Description  string
	PriceCents   int64
	Stock        int32
	MainCategory string
	SubCategory  string
	ImageURLs    []string
}
