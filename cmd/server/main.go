package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env file loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/crypto-tracker/internal/config"     // Internal config loader
	"github.com/iliyamo/crypto-tracker/internal/database"   // MySQL pool constructor
	"github.com/iliyamo/crypto-tracker/internal/handler"    // HTTP handlers
	"github.com/iliyamo/crypto-tracker/internal/market"     // market-data upstream client
	"github.com/iliyamo/crypto-tracker/internal/middleware" // rate limit middleware
	"github.com/iliyamo/crypto-tracker/internal/queue"      // background event consumer
	"github.com/iliyamo/crypto-tracker/internal/repository" // DB repositories
	"github.com/iliyamo/crypto-tracker/internal/router"     // Internal router setup
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// One process-scoped database handle, injected into every repository.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	posts := repository.NewPostRepo(db)
	watchlist := repository.NewWatchlistRepo(db)
	snapshots := repository.NewSnapshotRepo(db)
	stats := repository.NewStatsRepo(db)

	marketClient := market.NewClient(cfg.MarketBaseURL)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	postHandler := handler.NewPostHandler(posts, users)
	watchlistHandler := handler.NewWatchlistHandler(watchlist)
	snapshotHandler := handler.NewSnapshotHandler(snapshots, marketClient)
	marketHandler := handler.NewMarketHandler(marketClient)
	adminHandler := handler.NewAdminHandler(cfg, users, posts, stats, tokens)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterUser(e, postHandler, watchlistHandler, snapshotHandler, cfg.JWTSecret)
	router.RegisterMarket(e, marketHandler, config.LoadCacheConfig(), rdb)
	router.RegisterAdmin(e, adminHandler, users, cfg.JWTSecret)

	// Snapshot events are consumed in the background; the consumer runs
	// its own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartSnapshotConsumer(); err != nil {
			log.Printf("snapshot consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
