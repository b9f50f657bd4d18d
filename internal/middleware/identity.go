package middleware

// identity.go defines the one canonical identity shape used across the
// application. The JWT middleware stores exactly one Identity value in
// the request context and every downstream consumer reads it through
// CurrentIdentity. No handler parses tokens or invents its own context
// key for the user id.

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// identityKey is the single context key under which the authenticated
// identity is stored.
const identityKey = "identity"

// Identity is the normalized caller identity attached to every
// authenticated request: id, email and the admin flag, nothing else.
type Identity struct {
	ID      uint64 `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// ErrNoIdentity is returned by CurrentIdentity when the request passed
// no authentication middleware.
var ErrNoIdentity = errors.New("no identity in context")

// SetIdentity stores the identity in the request context. Only the JWT
// and admin middleware call this.
func SetIdentity(c echo.Context, id Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the authenticated caller's identity.
func CurrentIdentity(c echo.Context) (Identity, error) {
	v := c.Get(identityKey)
	id, ok := v.(Identity)
	if !ok || id.ID == 0 {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}
