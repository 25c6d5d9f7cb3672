package http

import "github.com/gin-gonic/gin"

// Register attaches editor session routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.createSession)
	rg.GET("/:sid", h.getSession)
	rg.DELETE("/:sid", h.deleteSession)

	rg.POST("/:sid/tabs", h.addTab)
	rg.POST("/:sid/tabs/:tab/activate", h.activateTab)

	rg.POST("/:sid/elements", h.drop)
	rg.PUT("/:sid/elements/:eid/position", h.move)

	rg.PUT("/:sid/selection", h.selectElement)
	rg.PATCH("/:sid/selection", h.updateSelected)
	rg.DELETE("/:sid/selection", h.deleteSelected)
	rg.POST("/:sid/selection/duplicate", h.duplicateSelected)
	rg.POST("/:sid/selection/raise", h.raiseSelected)
	rg.POST("/:sid/selection/lower", h.lowerSelected)

	rg.PATCH("/:sid/document", h.updateDocument)
	rg.POST("/:sid/save", h.save)
	rg.POST("/:sid/load", h.load)
}
