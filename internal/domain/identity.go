package domain

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// IdentityKind distinguishes the two ways a cart can be addressed.
type IdentityKind string

const (
	IdentityUser  IdentityKind = "user"
	IdentityGuest IdentityKind = "guest"
)

// ErrUnresolvedIdentity is returned when a request carries neither a usable
// bearer credential nor a guest session identifier.
var ErrUnresolvedIdentity = &Error{Code: EUNAUTHORIZED, Message: "No usable identity"}

// Identity selects the owner of a cart: exactly one of a user id or a guest
// session id. The zero value is not a valid identity; construct with ForUser
// or ForGuest.
type Identity struct {
	kind      IdentityKind
	userID    pgtype.UUID
	sessionID string
}

// ForUser returns an identity addressing the user's cart.
func ForUser(userID pgtype.UUID) Identity {
	return Identity{kind: IdentityUser, userID: userID}
}

// ForGuest returns an identity addressing the guest session's cart.
func ForGuest(sessionID string) Identity {
	return Identity{kind: IdentityGuest, sessionID: sessionID}
}

// Kind reports whether the identity addresses a user or a guest cart.
func (i Identity) Kind() IdentityKind { return i.kind }

// IsUser reports whether the identity is user-keyed.
func (i Identity) IsUser() bool { return i.kind == IdentityUser }

// UserID returns the user id. Only meaningful when IsUser is true.
func (i Identity) UserID() pgtype.UUID { return i.userID }

// SessionID returns the guest session id. Only meaningful when IsUser is false.
func (i Identity) SessionID() string { return i.sessionID }

// Valid reports whether the identity was constructed with an owner key.
func (i Identity) Valid() bool {
	switch i.kind {
	case IdentityUser:
		return i.userID.Valid
	case IdentityGuest:
		return i.sessionID != ""
	}
	return false
}

// String renders the identity for logging. Guest session ids are opaque
// tokens, so only a short prefix is included.
func (i Identity) String() string {
	switch i.kind {
	case IdentityUser:
		return fmt.Sprintf("user:%x", i.userID.Bytes)
	case IdentityGuest:
		s := i.sessionID
		if len(s) > 8 {
			s = s[:8]
		}
		return "guest:" + s
	}
	return "unresolved"
}
