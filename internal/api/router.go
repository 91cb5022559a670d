package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/crewhub/user-directory/internal/api/handler"
	"github.com/crewhub/user-directory/internal/api/middleware"
	"github.com/crewhub/user-directory/internal/core/service"
	"github.com/crewhub/user-directory/internal/infrastructure/config"
	mongodb "github.com/crewhub/user-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/crewhub/user-directory/internal/infrastructure/db/redis"
	"github.com/crewhub/user-directory/internal/infrastructure/http/handlers"
	"github.com/crewhub/user-directory/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("directory"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	denylist := redisdb.NewTokenDenylist(rdb)
	authService := service.NewAuthService(userRepo, denylist, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(cfg.JWTSecret, denylist)

	// Credential endpoints get a modest per-IP rate limit.
	loginLimiter := echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(10)))

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register, loginLimiter)
	auth.POST("/login", authHandler.Login, loginLimiter)
	auth.POST("/logout", authHandler.Logout, authMiddleware)

	// --- Directory routes (require auth) ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/users", userHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
