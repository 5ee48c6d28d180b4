package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

// NewRouter serves the API, metrics and, when ui is non-nil, the static
// dashboard for every other path.
func NewRouter(h *Handler, allowedOrigins []string, ui http.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     normalizeOrigins(allowedOrigins),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           10 * time.Minute,
	}))

	r.GET(PathHealth, h.Health)
	r.GET(PathDashboard, h.Dashboard)
	r.POST(PathConnect, h.Connect)
	r.POST(PathDisconnect, h.Disconnect)
	r.POST(PathRefresh, h.Refresh)
	r.GET(PathMetrics, gin.WrapH(promhttp.Handler()))

	if ui != nil {
		r.NoRoute(gin.WrapH(ui))
	}

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Request.URL.Path == PathMetrics {
			return
		}
		log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
