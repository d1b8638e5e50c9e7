package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cabfare/backend/config"
	"github.com/cabfare/backend/internal/infrastructure/metrics"
)

// SetupRouter creates and configures the Gin router. m may be nil to
// leave /metrics unregistered.
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger, m *metrics.Metrics) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		fares := v1.Group("/fares")
		{
			fares.POST("/compare", handler.CompareFares)
			fares.GET("/comparisons/:id", handler.GetComparison)
			fares.POST("/comparisons/:id/summary", handler.SummarizeComparison)
		}

		v1.POST("/chat", handler.Chat)
		v1.GET("/eta", handler.PickupETAs)
	}

	return router
}
