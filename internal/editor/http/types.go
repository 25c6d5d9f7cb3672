package http

import (
	"github.com/gin-gonic/gin"

	"github.com/livecanvas/dashboard-backend/internal/editor"
	"github.com/livecanvas/dashboard-backend/internal/livevalues"
)

// OwnerFunc names the caller a session belongs to; empty means anonymous.
type OwnerFunc func(c *gin.Context) string

// Handler bundles the dependencies for editor session endpoints.
type Handler struct {
	store  editor.SessionStore
	gw     editor.DashboardGateway
	lookup livevalues.LookupFunc
	owner  OwnerFunc
}

func New(store editor.SessionStore, gw editor.DashboardGateway, lookup livevalues.LookupFunc, owner OwnerFunc) *Handler {
	if owner == nil {
		owner = func(*gin.Context) string { return "" }
	}
	return &Handler{store: store, gw: gw, lookup: lookup, owner: owner}
}

type pointReq struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type dropReq struct {
	Item string  `json:"item" binding:"required"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type selectReq struct {
	ID string `json:"id"`
}

type loadReq struct {
	ID string `json:"id"`
}
