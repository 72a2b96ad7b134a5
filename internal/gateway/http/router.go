package http

import "github.com/gin-gonic/gin"

// Register mounts the chat route. mw runs before the handler, e.g. a rate
// limiter that should guard /chat only.
func (h *Handler) Register(r gin.IRoutes, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.chat)
	r.POST("/chat", handlers...)
}
