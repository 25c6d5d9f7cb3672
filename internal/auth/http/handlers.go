package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/livecanvas/dashboard-backend/internal/auth"
	"github.com/livecanvas/dashboard-backend/internal/auth/domain"
	"github.com/livecanvas/dashboard-backend/internal/auth/middleware"
	"github.com/livecanvas/dashboard-backend/internal/logging"
)

func (h *Handler) signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "usercode, username and password are required"})
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), domain.SignupRequest{
		Usercode: req.Usercode,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": user})
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "usercode and password are required"})
		return
	}

	sess, err := h.svc.Login(c.Request.Context(), req.Usercode, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	maxAge := int(sess.ExpiresAt.Sub(h.now()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, sess.Token, maxAge, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
		"user":       sess.User,
	})
}

func (h *Handler) logout(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.svc.Logout(c.Request.Context(), *id); err != nil {
		writeError(c, err)
		return
	}
	h.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) profile(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	user, err := h.svc.Profile(c.Request.Context(), *id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

func (h *Handler) updateProfile(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "username is required"})
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), *id, req.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

func (h *Handler) changePassword(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req passwordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "current_password and new_password are required"})
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), *id, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) withdraw(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req withdrawReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "password is required"})
		return
	}

	if err := h.svc.Withdraw(c.Request.Context(), *id, req.Password); err != nil {
		writeError(c, err)
		return
	}
	h.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.cookieSecure, true)
}

func identity(c *gin.Context) (*domain.Identity, bool) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return nil, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrUsercodeTaken):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("auth request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
