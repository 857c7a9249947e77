package domain

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestIdentity_Exclusivity(t *testing.T) {
	var userID pgtype.UUID
	if err := userID.Scan("123e4567-e89b-12d3-a456-426614174000"); err != nil {
		t.Fatal(err)
	}

	user := ForUser(userID)
	assert.True(t, user.IsUser())
	assert.True(t, user.Valid())
	assert.Equal(t, userID, user.UserID())
	assert.Empty(t, user.SessionID())

	guest := ForGuest("sess-abc123")
	assert.False(t, guest.IsUser())
	assert.True(t, guest.Valid())
	assert.Equal(t, "sess-abc123", guest.SessionID())
	assert.False(t, guest.UserID().Valid)
}

func TestIdentity_ZeroValueInvalid(t *testing.T) {
	var id Identity
	assert.False(t, id.Valid())
	assert.Equal(t, "unresolved", id.String())
}

func TestIdentity_StringTruncatesSession(t *testing.T) {
	id := ForGuest("0123456789abcdef")
	assert.Equal(t, "guest:01234567", id.String())
}
