package http

import (
	"context"

	"github.com/livecanvas/dashboard-backend/internal/dashboards/domain"
)

// Service is what the handlers need from the dashboard service.
type Service interface {
	Create(ctx context.Context, in domain.CreateInput) (*domain.Document, error)
	Get(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]domain.Summary, error)
	Update(ctx context.Context, id string, in domain.UpdateInput) (*domain.Document, error)
}

// Handler bundles the dependencies for dashboard HTTP endpoints.
type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}
