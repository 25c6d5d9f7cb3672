package http

import (
	"context"
	"time"

	"github.com/livecanvas/dashboard-backend/internal/livevalues/domain"
)

type Store interface {
	List(ctx context.Context) ([]domain.LiveValue, error)
	Get(ctx context.Context, code string) (*domain.LiveValue, error)
	Upsert(ctx context.Context, code, value string) (*domain.LiveValue, error)
}

// Snapshotter exposes the resolver's current mapping.
type Snapshotter interface {
	Snapshot() map[string]string
	RefreshedAt() time.Time
}

type Handler struct {
	store    Store
	resolver Snapshotter
}

func New(store Store, resolver Snapshotter) *Handler {
	return &Handler{store: store, resolver: resolver}
}
