package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aicv/cv-service/internal/api/handler"
	"github.com/aicv/cv-service/internal/api/middleware"
	"github.com/aicv/cv-service/internal/core/domain"
	"github.com/aicv/cv-service/internal/core/ports"
	"github.com/aicv/cv-service/internal/core/service"
	"github.com/aicv/cv-service/internal/infrastructure/config"
	mongodb "github.com/aicv/cv-service/internal/infrastructure/db/mongo"
	redisdb "github.com/aicv/cv-service/internal/infrastructure/db/redis"
	"github.com/aicv/cv-service/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The upstream text generator and the audit sink are constructed by the
// caller: both have lifecycles of their own (API connection, worker pool).
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	textGen ports.TextGenerator,
	audit service.AuditSink,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("aicv"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	quotaRepo := mongodb.NewQuotaRepository(db, cfg.Quota.StartingCredits)
	profileRepo := mongodb.NewProfileRepository(db)
	generationRepo := mongodb.NewGenerationRepository(db)

	authService := service.NewAuthService(accountRepo, cfg.JWTSecret, 24*time.Hour)
	profileService := service.NewProfileService(profileRepo, log)
	relay := service.NewCVRelay(textGen, log)
	generationService := service.NewGenerationService(quotaRepo, relay, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	generateHandler := handler.NewGenerateHandler(generationService)
	adminHandler := handler.NewAdminHandler(generationRepo)

	limiter := redisdb.NewRateLimiter(rdb, cfg.RateLimit.PerMinute, time.Minute)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))
	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Update)
	v1.GET("/quota", generateHandler.Quota)
	v1.POST("/cv/generate", generateHandler.Generate, middleware.RateLimit(limiter, log))
	v1.GET("/admin/generations", adminHandler.ListGenerations, middleware.RBAC(domain.RoleAdmin))

	return e
}
