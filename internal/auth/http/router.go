package http

import (
	"slices"

	"github.com/gin-gonic/gin"
)

// Register mounts the auth routes. session guards the account routes and
// limit, when given, throttles signup and login.
func (h *Handler) Register(rg *gin.RouterGroup, session gin.HandlerFunc, limit ...gin.HandlerFunc) {
	limit = slices.Clip(limit)
	rg.POST("/signup", append(limit, h.signup)...)
	rg.POST("/login", append(limit, h.login)...)

	authed := rg.Group("", session)
	authed.POST("/logout", h.logout)
	authed.GET("/profile", h.profile)
	authed.PUT("/profile", h.updateProfile)
	authed.PUT("/password", h.changePassword)
	authed.DELETE("/account", h.withdraw)
}
