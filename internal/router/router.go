package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/crypto-tracker/internal/config"
	"github.com/iliyamo/crypto-tracker/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/crypto-tracker/internal/middleware" // import middleware for JWT authentication and admin gating
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// /healthz can be used by load balancers or monitoring systems to
	// verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Unauthenticated
// operations live under /v1/auth; the protected identity endpoints live
// under /v1 behind the JWT middleware, the single token verification
// path for the whole API.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout-all", a.LogoutAll)
}

// RegisterMarket registers the public market-browse proxy. The Redis
// response cache wraps exactly this group so upstream quota is spent
// once per TTL; everything else on the API stays uncached.
func RegisterMarket(e *echo.Echo, m *handler.MarketHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1/market")
	g.Use(middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/coins", m.Coins)
	g.GET("/exchanges", m.Exchanges)
	g.GET("/search", m.Search)
}
