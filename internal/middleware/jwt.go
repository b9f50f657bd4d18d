package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/crypto-tracker/internal/utils" // token parsing helpers
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and stores the normalized Identity in the request context. The
// provided secret must match the one used when issuing tokens. This
// middleware is the only token verification path in the application;
// it wraps every protected route group so handlers can rely on
// CurrentIdentity without reimplementing any parsing.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Read the Authorization header. A valid header starts with
			// "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// ParseAccessToken enforces the HS256 signing method and
			// checks expiry against the current time.
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			SetIdentity(c, Identity{
				ID:      claims.UserID,
				Email:   claims.Email,
				IsAdmin: claims.IsAdmin,
			})
			return next(c)
		}
	}
}
