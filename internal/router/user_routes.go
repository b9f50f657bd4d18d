package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/crypto-tracker/internal/handler"
	"github.com/iliyamo/crypto-tracker/internal/middleware"
)

// RegisterUser registers the user-scoped resource routes: community
// posts, watchlist and snapshots. The post feed is public; every
// mutation and every per-user listing requires a valid access token.
func RegisterUser(e *echo.Echo, p *handler.PostHandler, w *handler.WatchlistHandler, s *handler.SnapshotHandler, jwtSecret string) {
	// Guests can read the global feed before registering.
	e.GET("/v1/posts", p.List)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	auth.POST("/posts", p.Create)
	auth.PUT("/posts/:id", p.Update)
	auth.DELETE("/posts/:id", p.Delete)

	auth.GET("/watchlist", w.List)
	auth.POST("/watchlist", w.Add)
	auth.DELETE("/watchlist/:id", w.Remove)

	auth.GET("/snapshots", s.List)
	auth.GET("/snapshots/:coinId", s.List)
	auth.POST("/snapshots/:coinId", s.Capture)
}
