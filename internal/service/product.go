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

type productService struct {
	store Store
}

// Compile-time check that productService implements domain.ProductService.
var _ domain.ProductService = (*productService)(nil)

// NewProductService creates a new ProductService instance.
func NewProductService(store Store) domain.ProductService {
	return &productService{store: store}
}

// ListProducts returns products matching the filter.
func (s *productService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	rows, err := s.store.ListProductsFiltered(ctx, repository.ListProductsFilteredParams{
		Search:       textOrNull(filter.Search),
		MainCategory: textOrNull(filter.MainCategory),
		SubCategory:  textOrNull(filter.SubCategory),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	telemetry.ProductSearches.WithLabelValues(
		telemetry.SearchFilterType(filter.Search, filter.MainCategory+filter.SubCategory),
	).Inc()

	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = mapProduct(row)
	}
	return products, nil
}

// GetProduct retrieves a single product by id.
func (s *productService) GetProduct(ctx context.Context, id pgtype.UUID) (*domain.Product, error) {
	row, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	telemetry.ProductViews.Inc()
	p := mapProduct(row)
	return &p, nil
}

// CreateProduct adds a product to the catalog.
func (s *productService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	row, err := s.store.CreateProduct(ctx, repository.CreateProductParams{
		Name:         input.Name,
		Description:  input.Description,
		PriceCents:   input.PriceCents,
		Stock:        input.Stock,
		MainCategory: input.MainCategory,
		SubCategory:  input.SubCategory,
		ImageUrls:    input.ImageURLs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	p := mapProduct(row)
	return &p, nil
}

// UpdateProduct replaces a product's attributes.
func (s *productService) UpdateProduct(ctx context.Context, id pgtype.UUID, input domain.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	row, err := s.store.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:           id,
		Name:         input.Name,
		Description:  input.Description,
		PriceCents:   input.PriceCents,
		Stock:        input.Stock,
		MainCategory: input.MainCategory,
		SubCategory:  input.SubCategory,
		ImageUrls:    input.ImageURLs,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	p := mapProduct(row)
	return &p, nil
}

// DeleteProduct removes a product from the catalog.
func (s *productService) DeleteProduct(ctx context.Context, id pgtype.UUID) error {
	affected, err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func validateProductInput(input domain.ProductInput) error {
	if input.Name == "" {
		return domain.Invalid("product.validate", "name is required")
	}
	if input.PriceCents < 0 {
		return domain.Invalid("product.validate", "price must not be negative")
	}
	if input.Stock < 0 {
		return domain.Invalid("product.validate", "stock must not be negative")
	}
	return nil
}

func mapProduct(p repository.Product) domain.Product {
	return domain.Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		PriceCents:   p.PriceCents,
		Stock:        p.Stock,
		MainCategory: p.MainCategory,
		SubCategory:  p.SubCategory,
		ImageURLs:    p.ImageUrls,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
