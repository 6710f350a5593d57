package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deptsched/scheduler-api/internal/service"
)

// Metrics records per-route request counts and latency. The route template is
// preferred over the raw path so ids do not explode label cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
