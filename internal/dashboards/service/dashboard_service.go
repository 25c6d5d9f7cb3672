package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/livecanvas/dashboard-backend/internal/dashboards/domain"
)

// Repository is the persistence contract the service needs.
type Repository interface {
	Create(ctx context.Context, rec domain.Record) (*domain.Record, error)
	Get(ctx context.Context, id string) (*domain.Record, error)
	List(ctx context.Context) ([]domain.Summary, error)
	Update(ctx context.Context, id string, patch domain.RecordPatch) (*domain.Record, error)
}

// DashboardService validates dashboard writes and converts between rows and
// documents.
type DashboardService struct {
	repo Repository
}

func NewDashboardService(repo Repository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Create stores a new dashboard. Name and the element list are required;
// missing canvas fields take their defaults.
func (s *DashboardService) Create(ctx context.Context, in domain.CreateInput) (*domain.Document, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.Elements == nil {
		return nil, fmt.Errorf("%w: elements are required", domain.ErrValidation)
	}
	if err := validateElements(in.Elements); err != nil {
		return nil, err
	}

	doc := domain.Document{
		Name:            name,
		Background:      domain.DefaultBackground,
		BackgroundImage: in.BackgroundImage,
		Width:           domain.CanvasWidth,
		Height:          domain.CanvasHeight,
		Elements:        in.Elements,
	}
	if in.Background != nil && *in.Background != "" {
		doc.Background = *in.Background
	}
	if in.Width != nil {
		doc.Width = *in.Width
	}
	if in.Height != nil {
		doc.Height = *in.Height
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("%w: canvas size must be positive", domain.ErrValidation)
	}

	rec, err := domain.Serialize(doc)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDocument(stored)
}

func (s *DashboardService) Get(ctx context.Context, id string) (*domain.Document, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDocument(rec)
}

func (s *DashboardService) List(ctx context.Context) ([]domain.Summary, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update. Only the provided fields change.
func (s *DashboardService) Update(ctx context.Context, id string, in domain.UpdateInput) (*domain.Document, error) {
	patch := domain.RecordPatch{
		Background:         in.Background,
		Width:              in.Width,
		Height:             in.Height,
		SetBackgroundImage: in.SetBackgroundImage,
		BackgroundImage:    in.BackgroundImage,
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		patch.Name = &name
	}
	if (in.Width != nil && *in.Width <= 0) || (in.Height != nil && *in.Height <= 0) {
		return nil, fmt.Errorf("%w: canvas size must be positive", domain.ErrValidation)
	}
	if in.Elements != nil {
		if err := validateElements(in.Elements); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(in.Elements)
		if err != nil {
			return nil, fmt.Errorf("marshal elements: %w", err)
		}
		patch.Elements = raw
	}

	rec, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return toDocument(rec)
}

func validateElements(elements []domain.Element) error {
	seen := make(map[string]struct{}, len(elements))
	for i, el := range elements {
		if el.ID == "" {
			return fmt.Errorf("%w: element %d has no id", domain.ErrValidation, i)
		}
		if _, dup := seen[el.ID]; dup {
			return fmt.Errorf("%w: duplicate element id %q", domain.ErrValidation, el.ID)
		}
		seen[el.ID] = struct{}{}

		if el.Type != domain.ElementShape && el.Type != domain.ElementChart {
			return fmt.Errorf("%w: element %q has unknown type %q", domain.ErrValidation, el.ID, el.Type)
		}
		if el.X < 0 || el.Y < 0 {
			return fmt.Errorf("%w: element %q has a negative position", domain.ErrValidation, el.ID)
		}
		if el.Width <= 0 || el.Height <= 0 {
			return fmt.Errorf("%w: element %q must have a positive size", domain.ErrValidation, el.ID)
		}
	}
	return nil
}

func toDocument(rec *domain.Record) (*domain.Document, error) {
	doc, err := domain.Deserialize(*rec)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
