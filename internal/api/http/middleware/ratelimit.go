package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RejectObserver is told about every request the limiter turns away.
type RejectObserver interface {
	ObserveRateLimited()
}

// RateLimit admits requests through a token bucket shared by all callers.
// A non-positive rps disables limiting.
func RateLimit(rps float64, burst int, obs RejectObserver) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	lim := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !lim.Allow() {
			if obs != nil {
				obs.ObserveRateLimited()
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
