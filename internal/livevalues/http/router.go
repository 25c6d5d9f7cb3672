package http

import "github.com/gin-gonic/gin"

// Register attaches the read routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/snapshot", h.snapshot)
}

// RegisterIngest attaches the write route behind guard, which authenticates
// the publishing device rather than a user.
func (h *Handler) RegisterIngest(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	rg.POST("", append(guard, h.upsert)...)
}
