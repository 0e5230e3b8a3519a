// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"phonefixtures/internal/domain/phone"
	"phonefixtures/internal/infrastructure/http/v1/handlers"
	"phonefixtures/internal/infrastructure/http/v1/middleware"
	"phonefixtures/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Reader serves record lookups and listings
	Reader phone.Reader

	// Store receives synthesized records; defaults to Reader when it is
	// also a phone.Store
	Store phone.Store

	// DB is pinged by the readiness probe; nil means in-memory mode
	DB handlers.Pinger

	// Metrics serves /metrics when set
	Metrics http.Handler

	// Mode is the gin mode; defaults to release
	Mode string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	mode := cfg.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	store := cfg.Store
	if store == nil {
		if s, ok := cfg.Reader.(phone.Store); ok {
			store = s
		}
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.ContextLogger(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	base := handlers.NewBaseHandler()
	digitsHandler := handlers.NewDigitsHandler(base)
	phoneHandler := handlers.NewPhoneHandler(base, cfg.Reader, store, log)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/digits", digitsHandler.Get)

		phones := v1.Group("/phones")
		phones.GET("", phoneHandler.List)
		phones.POST("/synthesize", phoneHandler.Synthesize)
		phones.GET("/:id", phoneHandler.Get)
		phones.GET("/:id/digits", phoneHandler.Digits)
	}

	return router
}
