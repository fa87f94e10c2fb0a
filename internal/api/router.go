package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/internal/api/handler"
	"github.com/usermgmt/user-service/internal/api/middleware"
	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/core/ports"
	"github.com/usermgmt/user-service/internal/core/service"
	"github.com/usermgmt/user-service/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, repo ports.UserRepository, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// Request metrics go to a per-router registry so building more than one
	// router (tests) never double-registers collectors; domain counters live
	// in the default registry and are gathered alongside.
	reg := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "usermgmt",
		Registerer: reg,
	}))

	// --- Dependencies ---
	userService := service.NewUserService(repo, cfg.MaxUsers, domain.Role(cfg.DefaultRole), log)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(repo)
	configHandler := handler.NewConfigHandler(cfg)
	requireKey := middleware.APIKey(cfg.APIKey)

	// --- Operational routes (no auth required) ---
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))

	// --- API routes; mutating ones require the x-api-key header ---
	apiGroup := e.Group("/api")
	apiGroup.GET("/config", configHandler.Get)
	apiGroup.GET("/users", userHandler.List)
	apiGroup.GET("/users/:id", userHandler.Get)
	apiGroup.POST("/users", userHandler.Create, requireKey)
	apiGroup.PUT("/users/:id", userHandler.Update, requireKey)
	apiGroup.DELETE("/users/:id", userHandler.Delete, requireKey)
	apiGroup.GET("/stats", userHandler.Stats)

	return e
}
