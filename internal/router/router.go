package router // package router defines how HTTP routes are registered for the API

import (
	"crypto/rsa"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/reelstack/catalog-api/internal/config"
	"github.com/reelstack/catalog-api/internal/handler"    // import the handlers that implement business logic
	"github.com/reelstack/catalog-api/internal/middleware" // import middleware for principal resolution and rate limiting
)

// RegisterRoutes registers routes that carry no authentication state.
// Currently it exposes only a health check, used by load balancers and
// monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the registration and login endpoints under
// /v1/auth. Neither requires an existing session; login is what mints
// tokens in the first place.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterCatalog registers the catalog endpoints under /v1. Principal
// resolution runs on the whole group so reads can serve anonymous and
// authenticated callers alike; only the three mutation routes additionally
// enforce an authenticated principal, and they do so before the handler
// executes. The rate limiter sits after principal resolution so its buckets
// can key on the caller's identity.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, pub *rsa.PublicKey, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.ResolvePrincipal(pub))
	g.Use(middleware.RateLimit(rlCfg, rdb))

	g.GET("/movies", h.Movies)
	g.GET("/movies/:id", h.Movie)
	g.GET("/actors", h.Actors)

	g.POST("/movies", h.CreateMovie, middleware.RequireAuth())
	g.PATCH("/movies/:id", h.UpdateMovie, middleware.RequireAuth())
	g.DELETE("/movies/:id", h.DeleteMovie, middleware.RequireAuth())
}
