package routes

import (
	"net/http"

	"github.com/njordlabs/njord/internal/middleware"
	"github.com/njordlabs/njord/internal/router"
)

// RegisterAPIRoutes wires the JSON API. Identity resolution happens in the
// global middleware chain; routes that need more than a resolved identity
// declare it here.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	admin := middleware.RequireAdmin(deps.Users)

	// Auth
	r.Post("/api/auth/signup", deps.Auth.Signup)
	r.Post("/api/auth/verify-otp", deps.Auth.VerifyOTP)
	r.Post("/api/auth/login", deps.Auth.Login)
	r.Get("/api/auth/me", deps.Auth.Me, middleware.RequireUser)
	r.Get("/api/auth/users", deps.Auth.Users, admin)

	// Catalog: reads are public, writes are admin only.
	r.Get("/api/products", deps.Products.List)
	r.Get("/api/products/{id}", deps.Products.Get)
	r.Post("/api/products", deps.Products.Create, admin)
	r.Put("/api/products/{id}", deps.Products.Update, admin)
	r.Delete("/api/products/{id}", deps.Products.Delete, admin)

	// Cart: guest session or bearer token, resolved by WithIdentity.
	r.Get("/api/cart", deps.Cart.Get, middleware.RequireIdentity)
	r.Delete("/api/cart", deps.Cart.Clear, middleware.RequireIdentity)
	r.Post("/api/cart/items", deps.Cart.AddItem, middleware.RequireIdentity)
	r.Put("/api/cart/items/{product_id}", deps.Cart.UpdateItem, middleware.RequireIdentity)
	r.Delete("/api/cart/items/{product_id}", deps.Cart.RemoveItem, middleware.RequireIdentity)
	r.Post("/api/cart/items/{product_id}/decrement", deps.Cart.DecrementItem, middleware.RequireIdentity)
	r.Post("/api/cart/merge", deps.Cart.Merge, middleware.RequireUser)

	// Operational endpoints.
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if deps.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}
}
