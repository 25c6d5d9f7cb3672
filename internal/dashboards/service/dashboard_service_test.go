package service

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livecanvas/dashboard-backend/internal/dashboards/domain"
)

type memDashboardRepo struct {
	rows  map[string]domain.Record
	seq   int
	clock time.Time
}

func newMemDashboardRepo() *memDashboardRepo {
	return &memDashboardRepo{rows: map[string]domain.Record{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memDashboardRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memDashboardRepo) Create(_ context.Context, rec domain.Record) (*domain.Record, error) {
	m.seq++
	rec.ID = fmt.Sprintf("dash-%05d-0000", m.seq)
	rec.CreatedAt = m.tick()
	rec.UpdatedAt = rec.CreatedAt
	m.rows[rec.ID] = rec
	return &rec, nil
}

func (m *memDashboardRepo) Get(_ context.Context, id string) (*domain.Record, error) {
	rec, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (m *memDashboardRepo) List(_ context.Context) ([]domain.Summary, error) {
	out := make([]domain.Summary, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, domain.Summary{ID: r.ID, Name: r.Name, Background: r.Background, UpdatedAt: r.UpdatedAt})
	}
	slices.SortFunc(out, func(a, b domain.Summary) int { return b.UpdatedAt.Compare(a.UpdatedAt) })
	return out, nil
}

func (m *memDashboardRepo) Update(_ context.Context, id string, p domain.RecordPatch) (*domain.Record, error) {
	rec, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Background != nil {
		rec.Background = *p.Background
	}
	if p.Width != nil {
		rec.Width = *p.Width
	}
	if p.Height != nil {
		rec.Height = *p.Height
	}
	if p.SetBackgroundImage {
		rec.BackgroundImage = p.BackgroundImage
	}
	if p.Elements != nil {
		rec.Elements = p.Elements
	}
	rec.UpdatedAt = m.tick()
	m.rows[id] = rec
	return &rec, nil
}

func rectElement(t *testing.T) domain.Element {
	t.Helper()
	at := domain.DropPosition(domain.Point{X: 100, Y: 100}, domain.CanvasWidth, domain.CanvasHeight)
	el, err := domain.NewElement(domain.PaletteRect, at, domain.CanvasWidth, domain.CanvasHeight)
	require.NoError(t, err)
	return el
}

func TestDashboardService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		svc := NewDashboardService(newMemDashboardRepo())
		doc, err := svc.Create(ctx, domain.CreateInput{Name: "대시보드 1", Elements: []domain.Element{}})
		require.NoError(t, err)

		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, domain.DefaultBackground, doc.Background)
		assert.Equal(t, domain.CanvasWidth, doc.Width)
		assert.Equal(t, domain.CanvasHeight, doc.Height)
		assert.Nil(t, doc.BackgroundImage)
		assert.NotNil(t, doc.Elements)
	})

	t.Run("requires name", func(t *testing.T) {
		svc := NewDashboardService(newMemDashboardRepo())
		_, err := svc.Create(ctx, domain.CreateInput{Name: "  ", Elements: []domain.Element{}})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("requires elements", func(t *testing.T) {
		svc := NewDashboardService(newMemDashboardRepo())
		_, err := svc.Create(ctx, domain.CreateInput{Name: "a"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects duplicate element ids", func(t *testing.T) {
		svc := NewDashboardService(newMemDashboardRepo())
		el := rectElement(t)
		_, err := svc.Create(ctx, domain.CreateInput{Name: "a", Elements: []domain.Element{el, el}})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects bad geometry", func(t *testing.T) {
		svc := NewDashboardService(newMemDashboardRepo())
		tests := []struct {
			name string
			edit func(el *domain.Element)
		}{
			{"negative x", func(el *domain.Element) { el.X = -1 }},
			{"negative y", func(el *domain.Element) { el.Y = -0.5 }},
			{"zero width", func(el *domain.Element) { el.Width = 0 }},
			{"negative height", func(el *domain.Element) { el.Height = -10 }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				el := rectElement(t)
				tt.edit(&el)
				_, err := svc.Create(ctx, domain.CreateInput{Name: "a", Elements: []domain.Element{el}})
				assert.ErrorIs(t, err, domain.ErrValidation)
			})
		}
	})
}

func TestDashboardService_SaveLoadScenario(t *testing.T) {
	ctx := context.Background()
	svc := NewDashboardService(newMemDashboardRepo())

	doc := domain.NewDocument(1)
	el := rectElement(t)
	doc = domain.AddElement(doc, el)

	created, err := svc.Create(ctx, domain.CreateInput{Name: doc.Name, Elements: doc.Elements})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Elements, 1)
	assert.Equal(t, el, loaded.Elements[0])
	assert.Equal(t, "대시보드 1", loaded.Name)
}

func TestDashboardService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewDashboardService(newMemDashboardRepo())

	created, err := svc.Create(ctx, domain.CreateInput{Name: "a", Elements: []domain.Element{rectElement(t)}})
	require.NoError(t, err)

	t.Run("partial keeps elements", func(t *testing.T) {
		bg := "#000000"
		out, err := svc.Update(ctx, created.ID, domain.UpdateInput{Background: &bg})
		require.NoError(t, err)
		assert.Equal(t, "#000000", out.Background)
		assert.Equal(t, "a", out.Name)
		assert.Len(t, out.Elements, 1)
	})

	t.Run("replaces elements", func(t *testing.T) {
		out, err := svc.Update(ctx, created.ID, domain.UpdateInput{Elements: []domain.Element{}})
		require.NoError(t, err)
		assert.Empty(t, out.Elements)
	})

	t.Run("sets and clears background image", func(t *testing.T) {
		img := "data:image/png;base64,AA=="
		out, err := svc.Update(ctx, created.ID, domain.UpdateInput{SetBackgroundImage: true, BackgroundImage: &img})
		require.NoError(t, err)
		require.NotNil(t, out.BackgroundImage)

		out, err = svc.Update(ctx, created.ID, domain.UpdateInput{SetBackgroundImage: true})
		require.NoError(t, err)
		assert.Nil(t, out.BackgroundImage)
	})

	t.Run("bad geometry rejected", func(t *testing.T) {
		el := rectElement(t)
		el.Width = 0
		_, err := svc.Update(ctx, created.ID, domain.UpdateInput{Elements: []domain.Element{el}})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		empty := ""
		_, err := svc.Update(ctx, created.ID, domain.UpdateInput{Name: &empty})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, "dash-nope", domain.UpdateInput{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDashboardService_ListMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewDashboardService(newMemDashboardRepo())

	a, err := svc.Create(ctx, domain.CreateInput{Name: "a", Elements: []domain.Element{}})
	require.NoError(t, err)
	b, err := svc.Create(ctx, domain.CreateInput{Name: "b", Elements: []domain.Element{}})
	require.NoError(t, err)

	name := "a2"
	_, err = svc.Update(ctx, a.ID, domain.UpdateInput{Name: &name})
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, b.ID, items[1].ID)
}
