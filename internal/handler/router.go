// internal/handler/router.go
package handler

import (
	"net/http"

	"hw-quote/internal/middleware"

	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	CORSOrigins []string
	Metrics     *middleware.Metrics
	// Telegram монтирует POST /telegram, если бот работает через webhook
	Telegram gin.HandlerFunc
}

// NewRouter wires middleware, service routes and the /api/v1 group.
func NewRouter(h *QuoteHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	if len(opts.CORSOrigins) > 0 {
		router.Use(middleware.CORS(opts.CORSOrigins))
	}
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		router.GET("/metrics", opts.Metrics.Handler())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.Telegram != nil {
		router.POST("/telegram", opts.Telegram)
	}

	h.Register(router.Group("/api/v1"))
	return router
}
