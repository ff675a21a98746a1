package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tubebenders/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, limiter *IPRateLimiter) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	// Recovery sits inside Logger and Metrics so recovered panics are logged and counted as 500s
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Operational endpoints are not rate limited
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	if limiter != nil && limiter.Enabled() {
		v1.Use(RateLimitMiddleware(limiter))
	}
	{
		benders := v1.Group("/tube-benders")
		{
			benders.GET("", handler.ListTubeBenders)
			benders.GET("/:id", handler.GetTubeBender)
			benders.GET("/:id/score", handler.GetScore)
		}

		v1.GET("/compare", handler.Compare)

		finder := v1.Group("/finder")
		{
			finder.GET("", handler.ListStrategies)
			finder.POST("/:strategy", handler.Finder)
		}

		v1.POST("/catalog/refresh", handler.RefreshCatalog)
	}

	return router
}
