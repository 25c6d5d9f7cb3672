package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/livecanvas/dashboard-backend/internal/dashboards/domain"
	"github.com/livecanvas/dashboard-backend/internal/logging"
)

type createReq struct {
	Name            string           `json:"name"`
	Background      *string          `json:"background"`
	BackgroundImage *string          `json:"background_image"`
	Width           *int             `json:"width"`
	Height          *int             `json:"height"`
	Elements        []domain.Element `json:"elements"`
}

// updateReq keeps background_image raw so that an explicit null (clear) can
// be told apart from an absent field (keep).
type updateReq struct {
	Name            *string          `json:"name"`
	Background      *string          `json:"background"`
	BackgroundImage json.RawMessage  `json:"background_image"`
	Width           *int             `json:"width"`
	Height          *int             `json:"height"`
	Elements        []domain.Element `json:"elements"`
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "dashboards": items})
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "dashboard": doc})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	doc, err := h.svc.Create(c.Request.Context(), domain.CreateInput{
		Name:            req.Name,
		Background:      req.Background,
		BackgroundImage: req.BackgroundImage,
		Width:           req.Width,
		Height:          req.Height,
		Elements:        req.Elements,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "dashboard": doc})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in := domain.UpdateInput{
		Name:       req.Name,
		Background: req.Background,
		Width:      req.Width,
		Height:     req.Height,
		Elements:   req.Elements,
	}
	if req.BackgroundImage != nil {
		in.SetBackgroundImage = true
		if string(req.BackgroundImage) != "null" {
			var img string
			if err := json.Unmarshal(req.BackgroundImage, &img); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "background_image must be a string or null"})
				return
			}
			in.BackgroundImage = &img
		}
	}

	doc, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "dashboard": doc})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "dashboard not found"})
	default:
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("dashboard request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
