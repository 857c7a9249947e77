package identity

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/njordlabs/njord/internal/auth"
	"github.com/njordlabs/njord/internal/domain"
)

const (
	// SessionHeader carries the guest session id.
	SessionHeader = "X-Session-ID"

	// SessionQueryParam is the query-string fallback for clients that cannot
	// set headers.
	SessionQueryParam = "session_id"
)

// Resolver turns an incoming request into the cart-owner identity. A bearer
// token always wins over a guest session id, so a logged-in client that still
// sends its old session header operates on its user cart.
type Resolver struct {
	tokens *auth.TokenManager
}

// NewResolver creates a Resolver verifying tokens with the given manager.
func NewResolver(tokens *auth.TokenManager) *Resolver {
	return &Resolver{tokens: tokens}
}

// FromRequest resolves the caller identity. Precedence: Authorization bearer
// token, then the X-Session-ID header, then the session_id query parameter.
// A present-but-invalid bearer token is rejected rather than silently
// downgraded to a guest.
func (r *Resolver) FromRequest(req *http.Request) (domain.Identity, error) {
	if raw, ok := bearerToken(req); ok {
		claims, err := r.tokens.Parse(raw)
		if err != nil {
			return domain.Identity{}, domain.ErrUnresolvedIdentity
		}
		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return domain.Identity{}, domain.ErrUnresolvedIdentity
		}
		return domain.ForUser(pgtype.UUID{Bytes: userID, Valid: true}), nil
	}

	if sid := req.Header.Get(SessionHeader); sid != "" {
		return domain.ForGuest(sid), nil
	}
	if sid := req.URL.Query().Get(SessionQueryParam); sid != "" {
		return domain.ForGuest(sid), nil
	}

	return domain.Identity{}, domain.ErrUnresolvedIdentity
}

// UserIDFromRequest resolves a request that must carry a valid bearer token.
func (r *Resolver) UserIDFromRequest(req *http.Request) (pgtype.UUID, error) {
	id, err := r.FromRequest(req)
	if err != nil {
		return pgtype.UUID{}, err
	}
	if !id.IsUser() {
		return pgtype.UUID{}, domain.Unauthorized("identity.resolve", "Authentication required")
	}
	return id.UserID(), nil
}

func bearerToken(req *http.Request) (string, bool) {
	header := req.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
