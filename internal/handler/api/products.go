package api

import (
	"log/slog"
	"net/http"

	"github.com/njordlabs/njord/internal/domain"
)

// ProductHandler serves the catalog endpoints. Reads are public; writes sit
// behind the admin middleware.
type ProductHandler struct {
	products domain.ProductService
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products domain.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{products: products, logger: logger}
}

type productResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PriceCents   int64    `json:"price_cents"`
	Stock        int32    `json:"stock"`
	MainCategory string   `json:"main_category"`
	SubCategory  string   `json:"sub_category"`
	ImageURLs    []string `json:"image_urls"`
}

func newProductResponse(p *domain.Product) productResponse {
	urls := p.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	return productResponse{
		ID:           uuidString(p.ID),
		Name:         p.Name,
		Description:  p.Description,
		PriceCents:   p.PriceCents,
		Stock:        p.Stock,
		MainCategory: p.MainCategory,
		SubCategory:  p.SubCategory,
		ImageURLs:    urls,
	}
}

type productRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PriceCents   int64    `json:"price_cents"`
	Stock        int32    `json:"stock"`
	MainCategory string   `json:"main_category"`
	SubCategory  string   `json:"sub_category"`
	ImageURLs    []string `json:"image_urls"`
}

func (req productRequest) input() domain.ProductInput {
	return domain.ProductInput{
		Name:         req.Name,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		Stock:        req.Stock,
		MainCategory: req.MainCategory,
		SubCategory:  req.SubCategory,
		ImageURLs:    req.ImageURLs,
	}
}

// List handles GET /api/products with optional search, main_category, and
// sub_category query parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	products, err := h.products.ListProducts(r.Context(), domain.ProductFilter{
		Search:       query.Get("search"),
		MainCategory: query.Get("main_category"),
		SubCategory:  query.Get("sub_category"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]productResponse, len(products))
	for i := range products {
		out[i] = newProductResponse(&products[i])
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": out})
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newProductResponse(product))
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	product, err := h.products.CreateProduct(r.Context(), req.input())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newProductResponse(product))
}

// Update handles PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), id, req.input())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newProductResponse(product))
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
