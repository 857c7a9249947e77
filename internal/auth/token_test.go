package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Generate("1b4e28ba-2fa1-11d2-883f-0016d3cca427", "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestTokenManager_Parse_Invalid(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, err := m.Generate("user-1", "ada@example.com")
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("different-secret", time.Hour)
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewTokenManager("test-secret", -time.Minute)
		tok, err := expired.Generate("user-1", "ada@example.com")
		require.NoError(t, err)
		_, err = expired.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		_, err := m.Parse(token[:len(token)-3] + "abc")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword_HashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, VerifyPassword("correct horse battery", hash))
	assert.ErrorIs(t, VerifyPassword("wrong password", hash), ErrPasswordMismatch)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
