package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/livecanvas/dashboard-backend/internal/bindings/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Binding, error)
	Get(ctx context.Context, id string) (*domain.Binding, error)
	Create(ctx context.Context, in domain.CreateInput) (*domain.Binding, error)
	Update(ctx context.Context, id string, in domain.UpdateInput) (*domain.Binding, error)
	Delete(ctx context.Context, id string) error
}

// BindingService handles the binding registry.
type BindingService struct {
	repo Repository
}

func NewBindingService(repo Repository) *BindingService {
	return &BindingService{repo: repo}
}

func (s *BindingService) List(ctx context.Context) ([]domain.Binding, error) {
	return s.repo.List(ctx)
}

func (s *BindingService) Get(ctx context.Context, id string) (*domain.Binding, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new binding; code and topic are required.
func (s *BindingService) Create(ctx context.Context, in domain.CreateInput) (*domain.Binding, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Code == "" || in.Topic == "" {
		return nil, fmt.Errorf("%w: code and topic are required", domain.ErrValidation)
	}
	return s.repo.Create(ctx, in)
}

// Update changes any of code, topic and description. A new code must still be
// unique.
func (s *BindingService) Update(ctx context.Context, id string, in domain.UpdateInput) (*domain.Binding, error) {
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: code must not be empty", domain.ErrValidation)
		}
		in.Code = &code
	}
	if in.Topic != nil {
		topic := strings.TrimSpace(*in.Topic)
		if topic == "" {
			return nil, fmt.Errorf("%w: topic must not be empty", domain.ErrValidation)
		}
		in.Topic = &topic
	}
	return s.repo.Update(ctx, id, in)
}

func (s *BindingService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
