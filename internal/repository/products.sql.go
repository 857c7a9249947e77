package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listProductsFiltered = `
SELECT id, name, description, price_cents, stock, main_category, sub_category, image_urls, created_at, updated_at
FROM products
WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')
  AND ($2::text IS NULL OR main_category = $2)
  AND ($3::text IS NULL OR sub_category = $3)
ORDER BY created_at DESC
`

type ListProductsFilteredParams struct {
	Search       pgtype.Text
	MainCategory pgtype.Text
	SubCategory  pgtype.Text
}

func (q *Queries) ListProductsFiltered(ctx context.Context, arg ListProductsFilteredParams) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProductsFiltered, arg.Search, arg.MainCategory, arg.SubCategory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock,
			&p.MainCategory, &p.SubCategory, &p.ImageUrls, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const getProductByID = `
SELECT id, name, description, price_cents, stock, main_category, sub_category, image_urls, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) GetProductByID(ctx context.Context, id pgtype.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, getProductByID, id)
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock,
		&p.MainCategory, &p.SubCategory, &p.ImageUrls, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const createProduct = `
INSERT INTO products (name, description, price_cents, stock, main_category, sub_category, image_urls)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, name, description, price_cents, stock, main_category, sub_category, image_urls, created_at, updated_at
`

type CreateProductParams struct {
	Name         string
	Description  string
	PriceCents   int64
	Stock        int32
	MainCategory string
	SubCategory  string
	ImageUrls    []string
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct,
		arg.Name, arg.Description, arg.PriceCents, arg.Stock, arg.MainCategory, arg.SubCategory, arg.ImageUrls)
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock,
		&p.MainCategory, &p.SubCategory, &p.ImageUrls, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const updateProduct = `
UPDATE products
SET name = $2, description = $3, price_cents = $4, stock = $5, main_category = $6, sub_category = $7, image_urls = $8, updated_at = now()
WHERE id = $1
RETURNING id, name, description, price_cents, stock, main_category, sub_category, image_urls, created_at, updated_at
`

type UpdateProductParams struct {
	ID           pgtype.UUID
	Name         string
	Description  string
	PriceCents   int64
	Stock        int32
	MainCategory string
	SubCategory  string
	ImageUrls    []string
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProduct,
		arg.ID, arg.Name, arg.Description, arg.PriceCents, arg.Stock, arg.MainCategory, arg.SubCategory, arg.ImageUrls)
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock,
		&p.MainCategory, &p.SubCategory, &p.ImageUrls, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const deleteProduct = `
DELETE FROM products WHERE id = $1
`

func (q *Queries) DeleteProduct(ctx context.Context, id pgtype.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
