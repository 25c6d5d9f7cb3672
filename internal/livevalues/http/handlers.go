package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/livecanvas/dashboard-backend/internal/livevalues/domain"
	"github.com/livecanvas/dashboard-backend/internal/logging"
)

type upsertReq struct {
	Code  string          `json:"code"`
	Value json.RawMessage `json:"value"`
}

// list returns every live value, or a single one when ?code= is given. An
// unknown code yields a null value rather than 404.
func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()

	if code, ok := c.GetQuery("code"); ok {
		v, err := h.store.Get(ctx, code)
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "value": nil})
			return
		}
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "value": v})
		return
	}

	values, err := h.store.List(ctx)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "values": values})
}

func (h *Handler) snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"values":       h.resolver.Snapshot(),
		"refreshed_at": h.resolver.RefreshedAt(),
	})
}

func (h *Handler) upsert(c *gin.Context) {
	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" || len(req.Value) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "code and value are required"})
		return
	}

	v, err := h.store.Upsert(c.Request.Context(), code, stringify(req.Value))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "value": v})
}

// stringify stores JSON strings unquoted and any other JSON value as its
// literal text, so 23.5 and "23.5" both become "23.5".
func stringify(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func internalError(c *gin.Context, err error) {
	logging.FromContext(c.Request.Context()).Error().Err(err).Msg("live value request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
}
