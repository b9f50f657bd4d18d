package middleware // middleware provides shared request processing for handlers

import (
	"database/sql" // sql provides the ErrNoRows sentinel
	"errors"       // errors.Is for sentinel comparison
	"net/http"     // standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/crypto-tracker/internal/repository" // user lookups for the privilege check
)

// RequireAdmin returns a middleware that gates admin-only routes. The
// admin flag is read from the current persisted user record, not from
// the token claim: a token minted before a role change must not keep
// its old privileges, and a token for a deleted user must stop working
// entirely. The refreshed identity is stored back into the context so
// downstream handlers see current values.
func RequireAdmin(users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, err := CurrentIdentity(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			u, err := users.GetByID(c.Request().Context(), ident.ID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					// Account deleted since the token was issued.
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
			}
			if !u.IsAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "admins only"})
			}
			SetIdentity(c, Identity{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin})
			return next(c)
		}
	}
}
