package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFound keeps unknown routes on the same {"detail": ...} shape as the
// chat endpoint.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
}

func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method Not Allowed"})
}
