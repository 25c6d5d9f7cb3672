package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/livecanvas/dashboard-backend/internal/dashboards/domain"
	"github.com/livecanvas/dashboard-backend/internal/editor"
	"github.com/livecanvas/dashboard-backend/internal/logging"
)

func (h *Handler) createSession(c *gin.Context) {
	s := editor.NewSession(h.owner(c))
	if err := h.store.Put(c.Request.Context(), s); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "view": s.View(h.lookup)})
}

func (h *Handler) getSession(c *gin.Context) {
	s, err := h.loadSession(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": s.View(h.lookup)})
}

func (h *Handler) deleteSession(c *gin.Context) {
	s, err := h.loadSession(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.store.Delete(c.Request.Context(), s.ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) addTab(c *gin.Context) {
	h.mutate(c, func(s *editor.Session) error {
		s.AddTab()
		return nil
	})
}

func (h *Handler) activateTab(c *gin.Context) {
	h.mutate(c, func(s *editor.Session) error {
		return s.ActivateTab(c.Param("tab"))
	})
}

func (h *Handler) drop(c *gin.Context) {
	var req dropReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "item is required"})
		return
	}
	h.mutate(c, func(s *editor.Session) error {
		_, err := s.Drop(domain.PaletteItem(req.Item), domain.Point{X: req.X, Y: req.Y})
		return err
	})
}

func (h *Handler) move(c *gin.Context) {
	var req pointReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	h.mutate(c, func(s *editor.Session) error {
		return s.Move(c.Param("eid"), domain.Point{X: req.X, Y: req.Y})
	})
}

func (h *Handler) selectElement(c *gin.Context) {
	var req selectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	h.mutate(c, func(s *editor.Session) error {
		return s.Select(req.ID)
	})
}

func (h *Handler) updateSelected(c *gin.Context) {
	var patch domain.ElementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	h.mutate(c, func(s *editor.Session) error {
		return s.UpdateSelected(patch)
	})
}

func (h *Handler) duplicateSelected(c *gin.Context) {
	h.mutate(c, func(s *editor.Session) error {
		_, err := s.DuplicateSelected()
		return err
	})
}

func (h *Handler) deleteSelected(c *gin.Context) {
	h.mutate(c, func(s *editor.Session) error {
		return s.DeleteSelected()
	})
}

func (h *Handler) raiseSelected(c *gin.Context) {
	h.mutate(c, func(s *editor.Session) error {
		return s.RaiseSelected()
	})
}

func (h *Handler) lowerSelected(c *gin.Context) {
	h.mutate(c, func(s *editor.Session) error {
		return s.SendSelectedBack()
	})
}

// updateDocument edits document-level properties. background_image is kept
// raw so that null clears it.
func (h *Handler) updateDocument(c *gin.Context) {
	var req struct {
		Name            *string         `json:"name"`
		Background      *string         `json:"background"`
		BackgroundImage json.RawMessage `json:"background_image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	var img *string
	if req.BackgroundImage != nil && string(req.BackgroundImage) != "null" {
		var v string
		if err := json.Unmarshal(req.BackgroundImage, &v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "background_image must be a string or null"})
			return
		}
		img = &v
	}

	h.mutate(c, func(s *editor.Session) error {
		if req.Name != nil {
			s.Rename(*req.Name)
		}
		if req.Background != nil {
			s.SetBackground(*req.Background)
		}
		if req.BackgroundImage != nil {
			s.SetBackgroundImage(img)
		}
		return nil
	})
}

func (h *Handler) save(c *gin.Context) {
	h.persist(c, func(s *editor.Session) error {
		_, err := s.Save(c.Request.Context(), h.gw)
		return err
	})
}

func (h *Handler) load(c *gin.Context) {
	var req loadReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}
	h.persist(c, func(s *editor.Session) error {
		_, err := s.Load(c.Request.Context(), h.gw, req.ID)
		return err
	})
}

// mutate runs an in-memory edit. Edits that need a selection are no-ops
// without one.
func (h *Handler) mutate(c *gin.Context, fn func(s *editor.Session) error) {
	s, err := h.loadSession(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := fn(s); err != nil && !errors.Is(err, editor.ErrNoSelection) {
		writeError(c, err)
		return
	}

	if err := h.store.Put(c.Request.Context(), s); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": s.View(h.lookup)})
}

// persist runs a save or load. The session is stored even on failure so the
// status message survives.
func (h *Handler) persist(c *gin.Context, fn func(s *editor.Session) error) {
	s, err := h.loadSession(c)
	if err != nil {
		writeError(c, err)
		return
	}

	opErr := fn(s)
	if err := h.store.Put(c.Request.Context(), s); err != nil {
		writeError(c, err)
		return
	}
	if opErr != nil {
		writeError(c, opErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": s.View(h.lookup)})
}

func (h *Handler) loadSession(c *gin.Context) (*editor.Session, error) {
	s, err := h.store.Get(c.Request.Context(), c.Param("sid"))
	if err != nil {
		return nil, err
	}
	if s.Owner != "" && s.Owner != h.owner(c) {
		return nil, editor.ErrSessionNotFound
	}
	return s, nil
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, editor.ErrNotSaved):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, editor.ErrSessionNotFound),
		errors.Is(err, editor.ErrTabNotFound),
		errors.Is(err, domain.ErrElementNotFound),
		errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("editor request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
