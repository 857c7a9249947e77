package identity

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/njordlabs/njord/internal/auth"
	"github.com/njordlabs/njord/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_FromRequest(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	resolver := NewResolver(tokens)
	userID := uuid.New()

	validToken, err := tokens.Generate(userID.String(), "ada@example.com")
	require.NoError(t, err)

	t.Run("bearer token resolves to user", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)

		id, err := resolver.FromRequest(req)
		require.NoError(t, err)
		assert.True(t, id.IsUser())
		assert.Equal(t, [16]byte(userID), id.UserID().Bytes)
	})

	t.Run("bearer token wins over session header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		req.Header.Set(SessionHeader, "sess-1")

		id, err := resolver.FromRequest(req)
		require.NoError(t, err)
		assert.True(t, id.IsUser())
	})

	t.Run("invalid bearer token is rejected, not downgraded", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		req.Header.Set(SessionHeader, "sess-1")

		_, err := resolver.FromRequest(req)
		assert.ErrorIs(t, err, domain.ErrUnresolvedIdentity)
	})

	t.Run("session header resolves to guest", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set(SessionHeader, "sess-1")

		id, err := resolver.FromRequest(req)
		require.NoError(t, err)
		assert.False(t, id.IsUser())
		assert.Equal(t, "sess-1", id.SessionID())
	})

	t.Run("session query param is the fallback", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart?session_id=sess-2", nil)

		id, err := resolver.FromRequest(req)
		require.NoError(t, err)
		assert.Equal(t, "sess-2", id.SessionID())
	})

	t.Run("header wins over query param", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart?session_id=sess-2", nil)
		req.Header.Set(SessionHeader, "sess-1")

		id, err := resolver.FromRequest(req)
		require.NoError(t, err)
		assert.Equal(t, "sess-1", id.SessionID())
	})

	t.Run("nothing to resolve", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		_, err := resolver.FromRequest(req)
		assert.ErrorIs(t, err, domain.ErrUnresolvedIdentity)
	})
}

func TestResolver_UserIDFromRequest(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	resolver := NewResolver(tokens)

	t.Run("guest session is not enough", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/cart/merge", nil)
		req.Header.Set(SessionHeader, "sess-1")

		_, err := resolver.UserIDFromRequest(req)
		assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
	})

	t.Run("bearer token yields the user id", func(t *testing.T) {
		userID := uuid.New()
		token, err := tokens.Generate(userID.String(), "ada@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/cart/merge", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		got, err := resolver.UserIDFromRequest(req)
		require.NoError(t, err)
		assert.Equal(t, [16]byte(userID), got.Bytes)
	})
}
