package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devops-dashboard/dashboard-api/docs"
	"github.com/devops-dashboard/dashboard-api/internal/api/handler"
	"github.com/devops-dashboard/dashboard-api/internal/api/middleware"
	"github.com/devops-dashboard/dashboard-api/internal/api/session"
	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
	"github.com/devops-dashboard/dashboard-api/internal/core/service"
	"github.com/devops-dashboard/dashboard-api/internal/infrastructure/config"
	mongodb "github.com/devops-dashboard/dashboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devops-dashboard/dashboard-api/internal/infrastructure/db/redis"
	"github.com/devops-dashboard/dashboard-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered, along with
// the report dispatcher the caller must Start before serving.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("dashboard"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sessionManager := session.NewManager(authService.TokenTTL(), cfg.Production())
	authHandler := handler.NewAuthHandler(authService, sessionManager)

	statusRepo := mongodb.NewStatusRepository(db)
	statusService := service.NewStatusService(statusRepo, redisdb.NewReportDedup(rdb), log)
	dispatcher := queue.NewDispatcher(0, statusService, log)
	statusHandler := handler.NewStatusHandler(statusService, dispatcher)

	authenticated := middleware.Auth(cfg.Auth.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/me", authHandler.Me, authenticated)

	// --- Tool status routes (all behind the token validator) ---
	e.GET("/api/status", statusHandler.List, authenticated)
	e.GET("/api/status/:tool", statusHandler.Get, authenticated)
	e.PUT("/api/status/:tool", statusHandler.Report, authenticated, adminOnly)
	e.GET("/api/alerts", statusHandler.Alerts, authenticated)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher
}
