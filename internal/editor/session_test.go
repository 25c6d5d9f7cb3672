package editor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livecanvas/dashboard-backend/internal/dashboards/domain"
)

type fakeGateway struct {
	docs    map[string]domain.Document
	seq     int
	creates int
	updates int
	fail    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{docs: map[string]domain.Document{}}
}

func (g *fakeGateway) Create(_ context.Context, in domain.CreateInput) (*domain.Document, error) {
	if g.fail != nil {
		return nil, g.fail
	}
	g.creates++
	g.seq++
	doc := domain.Document{
		ID:              fmt.Sprintf("dash-%05d-0001", g.seq),
		Name:            in.Name,
		Background:      *in.Background,
		BackgroundImage: in.BackgroundImage,
		Width:           *in.Width,
		Height:          *in.Height,
		Elements:        in.Elements,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	g.docs[doc.ID] = doc
	return &doc, nil
}

func (g *fakeGateway) Update(_ context.Context, id string, in domain.UpdateInput) (*domain.Document, error) {
	if g.fail != nil {
		return nil, g.fail
	}
	doc, ok := g.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	g.updates++
	doc.Name = *in.Name
	doc.Background = *in.Background
	doc.BackgroundImage = in.BackgroundImage
	doc.Elements = in.Elements
	doc.UpdatedAt = time.Now()
	g.docs[id] = doc
	return &doc, nil
}

func (g *fakeGateway) Get(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := g.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func TestNewSession(t *testing.T) {
	s := NewSession("user-1")

	require.Len(t, s.Tabs, 1)
	assert.Equal(t, s.Tabs[0].LocalID, s.ActiveTabID)
	assert.Equal(t, "대시보드 1", s.Active().Document.Name)
	assert.Empty(t, s.Active().Document.ID)
}

func TestTabs(t *testing.T) {
	s := NewSession("")
	first := s.ActiveTabID

	_, err := s.Drop(domain.PaletteRect, domain.Point{X: 100, Y: 100})
	require.NoError(t, err)
	require.NotEmpty(t, s.SelectedID)

	tab := s.AddTab()
	assert.Equal(t, tab.LocalID, s.ActiveTabID)
	assert.Equal(t, "대시보드 2", s.Active().Document.Name)
	assert.Empty(t, s.SelectedID)

	require.NoError(t, s.ActivateTab(first))
	assert.Empty(t, s.SelectedID)
	assert.Len(t, s.Active().Document.Elements, 1)

	assert.ErrorIs(t, s.ActivateTab("nope"), ErrTabNotFound)
}

func TestDropSelectsNewElement(t *testing.T) {
	s := NewSession("")

	el, err := s.Drop(domain.PaletteRect, domain.Point{X: 100, Y: 100})
	require.NoError(t, err)

	assert.Equal(t, el.ID, s.SelectedID)
	assert.Equal(t, 210.0, el.Width)
	assert.Equal(t, 140.0, el.Height)
	assert.GreaterOrEqual(t, el.X, 8.0)
	assert.GreaterOrEqual(t, el.Y, 8.0)

	_, err = s.Drop("star", domain.Point{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDropOntoLoadedSmallerCanvas(t *testing.T) {
	gw := newFakeGateway()
	gw.docs["dash-00001-0001"] = domain.Document{
		ID:         "dash-00001-0001",
		Name:       "좁은 화면",
		Background: domain.DefaultBackground,
		Width:      800,
		Height:     500,
		Elements:   []domain.Element{},
	}

	s := NewSession("")
	_, err := s.Load(context.Background(), gw, "dash-00001-0001")
	require.NoError(t, err)

	for _, item := range []domain.PaletteItem{domain.PaletteRect, domain.PaletteChart, domain.PaletteArrow} {
		el, err := s.Drop(item, domain.Point{X: 1000, Y: 600})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, el.X, 0.0)
		assert.GreaterOrEqual(t, el.Y, 0.0)
		assert.LessOrEqual(t, el.X+el.Width, 800.0)
		assert.LessOrEqual(t, el.Y+el.Height, 500.0)
	}
}

func TestMove(t *testing.T) {
	s := NewSession("")
	el, err := s.Drop(domain.PaletteCircle, domain.Point{X: 300, Y: 300})
	require.NoError(t, err)

	require.NoError(t, s.Move(el.ID, domain.Point{X: 540, Y: 328}))
	got, _ := s.Active().Document.Element(el.ID)
	assert.Equal(t, 500.0, got.X)
	assert.Equal(t, 300.0, got.Y)

	assert.ErrorIs(t, s.Move("missing", domain.Point{}), domain.ErrElementNotFound)
}

func TestSelectionEdits(t *testing.T) {
	s := NewSession("")
	a, err := s.Drop(domain.PaletteRect, domain.Point{X: 100, Y: 100})
	require.NoError(t, err)
	b, err := s.Drop(domain.PaletteChart, domain.Point{X: 400, Y: 300})
	require.NoError(t, err)

	t.Run("no selection is a no-op", func(t *testing.T) {
		require.NoError(t, s.Select(""))
		before := s.Active().Document

		label := "x"
		assert.ErrorIs(t, s.UpdateSelected(domain.ElementPatch{Label: &label}), ErrNoSelection)
		assert.ErrorIs(t, s.DeleteSelected(), ErrNoSelection)
		assert.ErrorIs(t, s.RaiseSelected(), ErrNoSelection)
		_, err := s.DuplicateSelected()
		assert.ErrorIs(t, err, ErrNoSelection)

		assert.Equal(t, before, s.Active().Document)
	})

	t.Run("update selected", func(t *testing.T) {
		require.NoError(t, s.Select(a.ID))
		code := "TEMP_001"
		require.NoError(t, s.UpdateSelected(domain.ElementPatch{DataCode: &code}))
		got, _ := s.Active().Document.Element(a.ID)
		assert.Equal(t, "TEMP_001", got.DataCode)
	})

	t.Run("send back and raise", func(t *testing.T) {
		require.NoError(t, s.Select(b.ID))
		require.NoError(t, s.SendSelectedBack())
		assert.Equal(t, b.ID, s.Active().Document.Elements[0].ID)

		require.NoError(t, s.RaiseSelected())
		assert.Equal(t, b.ID, s.Active().Document.Elements[1].ID)
	})

	t.Run("duplicate selects copy", func(t *testing.T) {
		require.NoError(t, s.Select(a.ID))
		cp, err := s.DuplicateSelected()
		require.NoError(t, err)
		assert.Equal(t, cp.ID, s.SelectedID)
		assert.Len(t, s.Active().Document.Elements, 3)
	})

	t.Run("delete clears selection", func(t *testing.T) {
		require.NoError(t, s.DeleteSelected())
		assert.Empty(t, s.SelectedID)
		assert.Len(t, s.Active().Document.Elements, 2)
	})

	t.Run("select unknown", func(t *testing.T) {
		assert.ErrorIs(t, s.Select("missing"), domain.ErrElementNotFound)
	})
}

func TestDocumentProperties(t *testing.T) {
	s := NewSession("")

	s.Rename("   ")
	assert.Equal(t, domain.UntitledName, s.Active().Document.Name)

	s.Rename("라인 A")
	assert.Equal(t, "라인 A", s.Active().Document.Name)

	s.SetBackground("#000000")
	assert.Equal(t, "#000000", s.Active().Document.Background)

	img := "data:image/png;base64,AA=="
	s.SetBackgroundImage(&img)
	require.NotNil(t, s.Active().Document.BackgroundImage)

	s.ClearBackgroundImage()
	assert.Nil(t, s.Active().Document.BackgroundImage)
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	s := NewSession("")
	_, err := s.Drop(domain.PaletteRect, domain.Point{X: 100, Y: 100})
	require.NoError(t, err)

	saved, err := s.Save(ctx, gw)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, saved.ID, s.Active().Document.ID)
	assert.Equal(t, 1, gw.creates)
	assert.Equal(t, "saved", s.Status)

	s.Rename("renamed")
	_, err = s.Save(ctx, gw)
	require.NoError(t, err)
	assert.Equal(t, 1, gw.creates)
	assert.Equal(t, 1, gw.updates)
	assert.Equal(t, "renamed", gw.docs[saved.ID].Name)
}

func TestSaveFailureLeavesTab(t *testing.T) {
	gw := newFakeGateway()
	gw.fail = errors.New("db unavailable")
	s := NewSession("")
	before := s.Active().Document

	_, err := s.Save(context.Background(), gw)
	assert.Error(t, err)
	assert.Equal(t, before, s.Active().Document)
	assert.Contains(t, s.Status, "save failed")
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()

	s := NewSession("")
	el, err := s.Drop(domain.PaletteRect, domain.Point{X: 100, Y: 100})
	require.NoError(t, err)
	saved, err := s.Save(ctx, gw)
	require.NoError(t, err)

	other := NewSession("")
	loaded, err := other.Load(ctx, gw, saved.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Elements, 1)
	assert.Equal(t, el, other.Active().Document.Elements[0])
	assert.Equal(t, saved.ID, other.Active().Document.ID)
	assert.Empty(t, other.SelectedID)

	t.Run("not found leaves state", func(t *testing.T) {
		before := other.Active().Document
		_, err := other.Load(ctx, gw, "dash-00000-0000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, before, other.Active().Document)
		assert.Contains(t, other.Status, "not found")
	})

	t.Run("reload active", func(t *testing.T) {
		_, err := other.Load(ctx, gw, "")
		require.NoError(t, err)
	})

	t.Run("unsaved tab cannot reload", func(t *testing.T) {
		other.AddTab()
		_, err := other.Load(ctx, gw, "")
		assert.ErrorIs(t, err, ErrNotSaved)
	})
}

func TestView(t *testing.T) {
	s := NewSession("")
	_, err := s.Drop(domain.PaletteRect, domain.Point{X: 100, Y: 100})
	require.NoError(t, err)
	code := "TEMP_001"
	value := "20"
	require.NoError(t, s.UpdateSelected(domain.ElementPatch{DataCode: &code, Value: &value}))

	v := s.View(func(string) (string, bool) { return "", false })
	require.Len(t, v.Elements, 1)
	assert.Equal(t, "20 (pending)", v.Elements[0].Display)

	v = s.View(func(c string) (string, bool) { return "23.5", c == "TEMP_001" })
	assert.Equal(t, "23.5", v.Elements[0].Display)
}
