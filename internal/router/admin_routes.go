package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/crypto-tracker/internal/handler"
	"github.com/iliyamo/crypto-tracker/internal/middleware"
	"github.com/iliyamo/crypto-tracker/internal/repository"
)

// RegisterAdmin registers the admin dashboard routes. RequireAdmin
// re-reads the user row on every request, so the admin flag comes from
// current persisted state rather than from a possibly-stale token claim.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, users *repository.UserRepo, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireAdmin(users))

	g.GET("/stats", a.GetStats)
	g.GET("/users", a.ListUsers)
	g.DELETE("/users/:id", a.DeleteUser)
	g.GET("/posts", a.ListPosts)
	g.DELETE("/posts/:id", a.DeletePost)
}
