package api

import (
	"log/slog"
	"net/http"

	"github.com/njordlabs/njord/internal/domain"
	"github.com/njordlabs/njord/internal/identity"
	"github.com/njordlabs/njord/internal/middleware"
)

// CartHandler serves the /api/cart endpoints. Every operation is keyed by the
// identity the middleware resolved: a user id from a bearer token or a guest
// session id.
type CartHandler struct {
	carts  domain.CartService
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts domain.CartService, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{carts: carts, logger: logger}
}

type cartItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type cartResponse struct {
	ID        string             `json:"id,omitempty"`
	Owner     string             `json:"owner,omitempty"`
	Items     []cartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Deleted   bool               `json:"deleted,omitempty"`
}

// newCartResponse projects a summary into the wire shape. A nil summary means
// the operation deleted the cart (last item removed).
func newCartResponse(summary *domain.CartSummary) cartResponse {
	if summary == nil {
		return cartResponse{Items: []cartItemResponse{}, Deleted: true}
	}

	items := make([]cartItemResponse, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, cartItemResponse{
			ProductID: uuidString(item.ProductID),
			Quantity:  item.Quantity,
		})
	}

	return cartResponse{
		ID:        uuidString(summary.Cart.ID),
		Owner:     string(summary.Cart.Owner().Kind()),
		Items:     items,
		ItemCount: summary.ItemCount,
	}
}

func callerIdentity(r *http.Request) (domain.Identity, error) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		return domain.Identity{}, domain.ErrUnresolvedIdentity
	}
	return id, nil
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := callerIdentity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := h.carts.GetCart(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(summary))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

// AddItem handles POST /api/cart/items. A missing or non-positive quantity
// means one unit; the service itself only accepts quantities >= 1.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := callerIdentity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	productID, err := parseUUIDField(req.ProductID, "product_id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	summary, err := h.carts.AddItem(r.Context(), id, productID, quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newCartResponse(summary))
}

type updateItemRequest struct {
	Quantity int32 `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/items/{product_id}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := callerIdentity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	productID, err := pathUUID(r, "product_id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := h.carts.UpdateItem(r.Context(), id, productID, req.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(summary))
}

// DecrementItem handles POST /api/cart/items/{product_id}/decrement.
func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	id, err := callerIdentity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	productID, err := pathUUID(r, "product_id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := h.carts.DecrementItem(r.Context(), id, productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(summary))
}

// RemoveItem handles DELETE /api/cart/items/{product_id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := callerIdentity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	productID, err := pathUUID(r, "product_id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := h.carts.RemoveItem(r.Context(), id, productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(summary))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id, err := callerIdentity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.carts.ClearCart(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type mergeRequest struct {
	SessionID string `json:"session_id"`
}

// Merge handles POST /api/cart/merge. The caller must be authenticated as a
// user; the guest session to merge comes from the request body or, failing
// that, the X-Session-ID header.
func (h *CartHandler) Merge(w http.ResponseWriter, r *http.Request) {
	id, err := callerIdentity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !id.IsUser() {
		respondError(w, r, domain.Unauthorized("cart.merge", "Authentication required"))
		return
	}

	var req mergeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = r.Header.Get(identity.SessionHeader)
	}
	if sessionID == "" {
		respondError(w, r, domain.Invalid("cart.merge", "A guest session id is required"))
		return
	}

	summary, err := h.carts.MergeGuestCart(r.Context(), sessionID, id.UserID())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(summary))
}
