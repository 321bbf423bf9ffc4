package http

import (
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/api/middleware"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/infrastructure/monitoring"
	"github.com/gin-gonic/gin"
)

// RouterConfig selects the optional middleware.
type RouterConfig struct {
	CORS      middleware.CORSConfig
	RateLimit *middleware.RateLimitConfig
}

// NewRouter registers the API routes on a fresh engine.
func NewRouter(h *Handlers, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(h.logger))
	router.Use(monitoring.Middleware(h.metrics))
	router.Use(middleware.CORS(cfg.CORS))
	if cfg.RateLimit != nil {
		router.Use(middleware.RateLimit(*cfg.RateLimit))
	}

	router.GET("/health", h.Health)
	router.GET("/metrics", monitoring.Handler(h.metrics))

	v1 := router.Group("/api/v1")
	v1.POST("/convert", h.Convert)
	v1.POST("/inspect", h.Inspect)
	v1.GET("/enumerations", h.Enumerations)
	v1.GET("/enumerations/:name", h.Enumeration)

	return router
}
