package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/monitoring"
)

// Metrics records request counts and latencies per route. The route template
// (not the raw path) is used as the endpoint label to keep cardinality
// bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		monitoring.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		monitoring.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}
