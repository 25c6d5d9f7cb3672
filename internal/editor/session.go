package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/livecanvas/dashboard-backend/internal/dashboards/domain"
	"github.com/livecanvas/dashboard-backend/internal/livevalues"
)

// Tab is one open document. LocalID identifies the tab before and after the
// document gets a persisted id.
type Tab struct {
	LocalID  string          `json:"local_id"`
	Document domain.Document `json:"document"`
}

// Session is the editing state of one user: open tabs, the active tab, the
// selected element and the last status message. None of it is persisted with
// the dashboards themselves.
type Session struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner,omitempty"`
	Tabs        []Tab     `json:"tabs"`
	ActiveTabID string    `json:"active_tab_id"`
	SelectedID  string    `json:"selected_id,omitempty"`
	Status      string    `json:"status,omitempty"`
	TabsOpened  int       `json:"tabs_opened"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DashboardGateway is the persistence the editor saves through.
type DashboardGateway interface {
	Create(ctx context.Context, in domain.CreateInput) (*domain.Document, error)
	Update(ctx context.Context, id string, in domain.UpdateInput) (*domain.Document, error)
	Get(ctx context.Context, id string) (*domain.Document, error)
}

// NewSession opens a session with a single empty tab.
func NewSession(owner string) *Session {
	s := &Session{ID: uuid.NewString(), Owner: owner}
	s.AddTab()
	return s
}

// AddTab opens a new empty document and makes it active.
func (s *Session) AddTab() Tab {
	s.TabsOpened++
	tab := Tab{LocalID: uuid.NewString(), Document: domain.NewDocument(s.TabsOpened)}
	s.Tabs = append(s.Tabs, tab)
	s.ActiveTabID = tab.LocalID
	s.SelectedID = ""
	return tab
}

// ActivateTab switches tabs and clears the selection.
func (s *Session) ActivateTab(localID string) error {
	if s.tab(localID) == nil {
		return ErrTabNotFound
	}
	s.ActiveTabID = localID
	s.SelectedID = ""
	return nil
}

// Active returns the active tab.
func (s *Session) Active() *Tab {
	if t := s.tab(s.ActiveTabID); t != nil {
		return t
	}
	if len(s.Tabs) == 0 {
		s.AddTab()
	}
	s.ActiveTabID = s.Tabs[0].LocalID
	return &s.Tabs[0]
}

func (s *Session) tab(localID string) *Tab {
	for i := range s.Tabs {
		if s.Tabs[i].LocalID == localID {
			return &s.Tabs[i]
		}
	}
	return nil
}

// Drop places a palette item under the pointer and selects it.
func (s *Session) Drop(item domain.PaletteItem, pointer domain.Point) (domain.Element, error) {
	t := s.Active()
	w, h := t.Document.CanvasSize()
	el, err := domain.NewElement(item, domain.DropPosition(pointer, w, h), w, h)
	if err != nil {
		return domain.Element{}, err
	}
	t.Document = domain.AddElement(t.Document, el)
	s.SelectedID = el.ID
	return el, nil
}

// Move handles a drag release at pointer.
func (s *Session) Move(id string, pointer domain.Point) error {
	t := s.Active()
	doc, err := domain.MoveElement(t.Document, id, domain.MovePosition(pointer))
	t.Document = doc
	return err
}

// Select sets the single selection; an empty id clears it.
func (s *Session) Select(id string) error {
	if id == "" {
		s.SelectedID = ""
		return nil
	}
	if _, ok := s.Active().Document.Element(id); !ok {
		return domain.ErrElementNotFound
	}
	s.SelectedID = id
	return nil
}

func (s *Session) selected() (*Tab, string, error) {
	t := s.Active()
	if s.SelectedID == "" {
		return t, "", ErrNoSelection
	}
	if _, ok := t.Document.Element(s.SelectedID); !ok {
		s.SelectedID = ""
		return t, "", ErrNoSelection
	}
	return t, s.SelectedID, nil
}

// UpdateSelected applies a property-panel edit to the selected element.
func (s *Session) UpdateSelected(patch domain.ElementPatch) error {
	t, id, err := s.selected()
	if err != nil {
		return err
	}
	doc, err := domain.UpdateElement(t.Document, id, patch)
	t.Document = doc
	return err
}

// DuplicateSelected copies the selected element and selects the copy.
func (s *Session) DuplicateSelected() (domain.Element, error) {
	t, id, err := s.selected()
	if err != nil {
		return domain.Element{}, err
	}
	doc, cp, err := domain.DuplicateElement(t.Document, id)
	if err != nil {
		return domain.Element{}, err
	}
	t.Document = doc
	s.SelectedID = cp.ID
	return cp, nil
}

func (s *Session) DeleteSelected() error {
	t, id, err := s.selected()
	if err != nil {
		return err
	}
	doc, err := domain.DeleteElement(t.Document, id)
	t.Document = doc
	s.SelectedID = ""
	return err
}

func (s *Session) RaiseSelected() error {
	t, id, err := s.selected()
	if err != nil {
		return err
	}
	doc, err := domain.RaiseToFront(t.Document, id)
	t.Document = doc
	return err
}

func (s *Session) SendSelectedBack() error {
	t, id, err := s.selected()
	if err != nil {
		return err
	}
	doc, err := domain.SendToBack(t.Document, id)
	t.Document = doc
	return err
}

// Rename sets the active document's name. A blank name becomes the untitled
// placeholder.
func (s *Session) Rename(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.UntitledName
	}
	s.Active().Document.Name = name
}

func (s *Session) SetBackground(color string) {
	if color == "" {
		color = domain.DefaultBackground
	}
	s.Active().Document.Background = color
}

// SetBackgroundImage sets the encoded image; nil clears it.
func (s *Session) SetBackgroundImage(dataURL *string) {
	if dataURL != nil && *dataURL == "" {
		dataURL = nil
	}
	s.Active().Document.BackgroundImage = dataURL
}

func (s *Session) ClearBackgroundImage() {
	s.SetBackgroundImage(nil)
}

// Save persists the active document: create when it has no id yet, update
// otherwise. On failure the tab is left untouched and Status explains why.
func (s *Session) Save(ctx context.Context, gw DashboardGateway) (*domain.Document, error) {
	t := s.Active()
	doc := t.Document

	var (
		saved *domain.Document
		err   error
	)
	if doc.ID == "" {
		saved, err = gw.Create(ctx, domain.CreateInput{
			Name:            doc.Name,
			Background:      &doc.Background,
			BackgroundImage: doc.BackgroundImage,
			Width:           &doc.Width,
			Height:          &doc.Height,
			Elements:        nonNil(doc.Elements),
		})
	} else {
		saved, err = gw.Update(ctx, doc.ID, domain.UpdateInput{
			Name:               &doc.Name,
			Background:         &doc.Background,
			Width:              &doc.Width,
			Height:             &doc.Height,
			SetBackgroundImage: true,
			BackgroundImage:    doc.BackgroundImage,
			Elements:           nonNil(doc.Elements),
		})
	}
	if err != nil {
		s.Status = "save failed: " + err.Error()
		return nil, fmt.Errorf("save dashboard: %w", err)
	}

	t.Document.ID = saved.ID
	t.Document.CreatedAt = saved.CreatedAt
	t.Document.UpdatedAt = saved.UpdatedAt
	s.Status = "saved"
	return saved, nil
}

// Load replaces the active document with the stored one. An empty id reloads
// the active document. NotFound leaves local state unchanged.
func (s *Session) Load(ctx context.Context, gw DashboardGateway, id string) (*domain.Document, error) {
	t := s.Active()
	if id == "" {
		id = t.Document.ID
	}
	if id == "" {
		s.Status = "load failed: " + ErrNotSaved.Error()
		return nil, ErrNotSaved
	}

	doc, err := gw.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.Status = "load failed: dashboard not found"
		} else {
			s.Status = "load failed: " + err.Error()
		}
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	loaded := *doc
	loaded.Elements = nonNil(loaded.Elements)
	if loaded.Width <= 0 {
		loaded.Width = domain.CanvasWidth
	}
	if loaded.Height <= 0 {
		loaded.Height = domain.CanvasHeight
	}
	t.Document = loaded
	s.SelectedID = ""
	s.Status = "loaded"
	return &loaded, nil
}

// ElementView is an element together with the text to display for it.
type ElementView struct {
	domain.Element
	Display string `json:"display"`
}

// View is the render model of a session.
type View struct {
	Session  *Session      `json:"session"`
	Active   Tab           `json:"active"`
	Elements []ElementView `json:"elements"`
}

// View resolves the active document's display values against lookup.
func (s *Session) View(lookup livevalues.LookupFunc) View {
	t := s.Active()
	els := make([]ElementView, 0, len(t.Document.Elements))
	for _, el := range t.Document.Elements {
		els = append(els, ElementView{Element: el, Display: livevalues.DisplayValue(el, lookup)})
	}
	return View{Session: s, Active: *t, Elements: els}
}

func nonNil(els []domain.Element) []domain.Element {
	if els == nil {
		return []domain.Element{}
	}
	return els
}
