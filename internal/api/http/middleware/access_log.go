package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver receives one observation per completed request.
type RequestObserver interface {
	ObserveRequest(method, path string, status int, latency time.Duration)
}

// AccessLog logs method, path, status and latency for every request and
// forwards the same values to obs when it is non-nil.
func AccessLog(logger *slog.Logger, obs RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		logger.InfoContext(c.Request.Context(), "request",
			"request_id", GetRequestID(c.Request.Context()),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency,
		)
		if obs != nil {
			obs.ObserveRequest(c.Request.Method, path, status, latency)
		}
	}
}
