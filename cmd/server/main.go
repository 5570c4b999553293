package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the process environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/reelstack/catalog-api/internal/config"   // Internal config loader
	"github.com/reelstack/catalog-api/internal/database" // MySQL pool
	"github.com/reelstack/catalog-api/internal/handler"
	"github.com/reelstack/catalog-api/internal/queue"
	"github.com/reelstack/catalog-api/internal/repository"
	"github.com/reelstack/catalog-api/internal/router" // Internal router setup
	"github.com/reelstack/catalog-api/internal/service"
	"github.com/reelstack/catalog-api/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real environments set vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// The private key signs tokens at login; only the public key is handed
	// to the verification middleware.
	priv, err := utils.LoadRSAPrivateKey(cfg.PrivateKeyPath)
	if err != nil {
		log.Fatalf("signing key: %v", err)
	}
	pub, err := utils.LoadRSAPublicKey(cfg.PublicKeyPath)
	if err != nil {
		log.Fatalf("verification key: %v", err)
	}

	movies := repository.NewMovieRepo(db)
	actors := repository.NewActorRepo(db)
	users := repository.NewUserRepo(db)

	catalogQuery := service.NewCatalogQuery(movies, actors)
	catalogMut := service.NewCatalogMutation(movies)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	// Background consumer writes catalog mutation events to logs/catalog.log.
	go func() {
		if err := queue.StartMovieEventConsumer(); err != nil {
			log.Printf("movie event consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, priv))
	router.RegisterCatalog(e, handler.NewCatalogHandler(catalogQuery, catalogMut), pub, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
