package middleware

import (
	"context"
	"net/http"

	"github.com/njordlabs/njord/internal/domain"
	"github.com/njordlabs/njord/internal/identity"
)

const (
	// IdentityContextKey is the context key for the resolved cart-owner
	// identity.
	IdentityContextKey contextKey = "identity"
)

// WithIdentity resolves the caller identity (bearer token or guest session)
// and stores it in the request context. Resolution failure is not fatal here;
// endpoints that need an identity reject the request themselves. An invalid
// bearer token is never downgraded to a guest identity.
func WithIdentity(resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.FromRequest(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity rejects requests that resolved to no identity at all.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects requests that are not authenticated as a user. Guest
// sessions are not enough.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIdentity(r.Context())
		if !ok || !id.IsUser() {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin ensures the authenticated user holds the admin account type,
// returning 403 otherwise. Must run after WithIdentity.
func RequireAdmin(users domain.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetIdentity(r.Context())
			if !ok || !id.IsUser() {
				respondUnauthorized(w, r)
				return
			}

			user, err := users.GetUserByID(r.Context(), id.UserID())
			if err != nil {
				respondUnauthorized(w, r)
				return
			}
			if !user.IsAdmin() {
				respondForbidden(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity retrieves the resolved identity from the request context.
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(IdentityContextKey).(domain.Identity)
	return id, ok
}
