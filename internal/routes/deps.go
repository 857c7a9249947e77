package routes

import (
	"github.com/njordlabs/njord/internal/domain"
	"github.com/njordlabs/njord/internal/handler/api"
	"github.com/njordlabs/njord/internal/middleware"
)

// APIDeps contains the handlers and services the API routes need.
type APIDeps struct {
	Auth     *api.AuthHandler
	Products *api.ProductHandler
	Cart     *api.CartHandler

	// Users backs the admin check on catalog writes.
	Users domain.UserService

	// Metrics exposes the Prometheus scrape endpoint.
	Metrics *middleware.Metrics
}
