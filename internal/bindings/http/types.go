package http

import (
	"context"

	"github.com/livecanvas/dashboard-backend/internal/bindings/domain"
)

type Service interface {
	List(ctx context.Context) ([]domain.Binding, error)
	Create(ctx context.Context, in domain.CreateInput) (*domain.Binding, error)
	Update(ctx context.Context, id string, in domain.UpdateInput) (*domain.Binding, error)
	Delete(ctx context.Context, id string) error
}

// Handler bundles the dependencies for binding HTTP endpoints.
type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}
