package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/growtlabs/growt/internal/server/handlers"
)

// adminRoleHeader carries the caller's role as asserted by the upstream
// identity layer; the console routes require it to be "admin".
const adminRoleHeader = "X-User-Role"

// New wires the Gin engine with required routes and middlewares.
func New(herdHandler *handlers.HerdHandler, ingestHandler *handlers.IngestHandler, deviceHandler *handlers.DeviceHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/readings", ingestHandler.Receive)

		api.POST("/animals", herdHandler.RegisterAnimal)
		api.GET("/animals", herdHandler.ListAnimals)

		api.GET("/herd", herdHandler.Snapshot)
		api.GET("/herd/history", herdHandler.History)
		api.GET("/herd/monthly", herdHandler.Monthly)

		api.GET("/public/herd", herdHandler.PublicSnapshot)

		admin := api.Group("/admin", requireAdmin())
		{
			admin.GET("/devices", deviceHandler.List)
			admin.POST("/devices/:id/approve", deviceHandler.Approve)
			admin.POST("/devices/:id/reject", deviceHandler.Reject)
		}
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(adminRoleHeader) != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
