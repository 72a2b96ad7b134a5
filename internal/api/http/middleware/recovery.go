package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic inside a handler into a 500 with a detail body.
// The process keeps serving.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		detail := fmt.Sprint(recovered)
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			"request_id", GetRequestID(c.Request.Context()),
			"path", c.Request.URL.Path,
			"error", detail,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": detail})
	})
}
