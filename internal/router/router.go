package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/communityhours/hours-dashboard/internal/system/config"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Options configures the HTTP router
type Options struct {
	Logger   *logrus.Logger
	CORS     config.CORSConfig
	Identity middleware.IdentityOptions
	// Database is checked by /health when set
	Database HealthChecker
}

// SetupRouter builds the engine with the global middleware chain and returns
// it together with the authenticated /api/v1 group modules register on
func SetupRouter(opts Options) (*gin.Engine, *gin.RouterGroup) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.RequestLogger(opts.Logger))

	if opts.CORS.Enabled {
		router.Use(middleware.CORSMiddleware(middleware.CORSOptions{
			AllowedOrigins:   opts.CORS.AllowedOrigins,
			AllowedMethods:   opts.CORS.AllowedMethods,
			AllowedHeaders:   opts.CORS.AllowedHeaders,
			AllowCredentials: opts.CORS.AllowCredentials,
		}))
	}

	// Health check
	router.GET("/health", healthHandler(opts.Database))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.IdentityMiddleware(opts.Identity))

	return router, v1
}

func healthHandler(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
