package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/livecanvas/dashboard-backend/internal/bindings/domain"
	"github.com/livecanvas/dashboard-backend/internal/logging"
)

type createReq struct {
	Code        string  `json:"code" binding:"required"`
	Topic       string  `json:"topic" binding:"required"`
	Description *string `json:"description"`
}

// updateReq keeps description raw so that an explicit null clears it.
type updateReq struct {
	Code        *string         `json:"code"`
	Topic       *string         `json:"topic"`
	Description json.RawMessage `json:"description"`
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "bindings": items})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "code and topic are required"})
		return
	}

	b, err := h.svc.Create(c.Request.Context(), domain.CreateInput{
		Code:        req.Code,
		Topic:       req.Topic,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "binding": b})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in := domain.UpdateInput{Code: req.Code, Topic: req.Topic}
	if req.Description != nil {
		in.SetDescription = true
		if string(req.Description) != "null" {
			var desc string
			if err := json.Unmarshal(req.Description, &desc); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "description must be a string or null"})
				return
			}
			in.Description = &desc
		}
	}

	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "binding": b})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "binding not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "code already exists"})
	default:
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("binding request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
