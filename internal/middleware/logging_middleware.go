package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogging tags every request with an ID and logs method, path, status
// and latency. Health and metrics probes are skipped to keep the logs useful.
func RequestLogging() gin.HandlerFunc {
	skip := map[string]struct{}{
		"/health":  {},
		"/metrics": {},
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})

		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
		} else {
			entry.Info("request completed")
		}
	}
}
