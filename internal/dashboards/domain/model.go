package domain

import (
	"encoding/json"
	"time"
)

// Canvas defaults shared by the editor and the create endpoint.
const (
	CanvasWidth       = 1200
	CanvasHeight      = 700
	DefaultBackground = "#ffffff"
)

type ElementType string

const (
	ElementShape ElementType = "shape"
	ElementChart ElementType = "chart"
)

type ShapeKind string

const (
	ShapeRect     ShapeKind = "rect"
	ShapeCircle   ShapeKind = "circle"
	ShapeTriangle ShapeKind = "triangle"
	ShapeDiamond  ShapeKind = "diamond"
	ShapeLine     ShapeKind = "line"
	ShapeArrow    ShapeKind = "arrow"
)

// PaletteItem is what the user drags from the toolbar onto the canvas.
type PaletteItem string

const (
	PaletteRect     PaletteItem = "rect"
	PaletteCircle   PaletteItem = "circle"
	PaletteTriangle PaletteItem = "triangle"
	PaletteDiamond  PaletteItem = "diamond"
	PaletteLine     PaletteItem = "line"
	PaletteArrow    PaletteItem = "arrow"
	PaletteChart    PaletteItem = "chart"
)

// FontFamilies is the fixed set offered by the property panel.
var FontFamilies = []string{"Pretendard", "Arial", "Noto Sans KR", "Verdana", "Georgia"}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is one widget placed on a dashboard canvas.
type Element struct {
	ID         string      `json:"id"`
	Type       ElementType `json:"type"`
	Shape      ShapeKind   `json:"shape,omitempty"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Label      string      `json:"label"`
	Value      string      `json:"value"`
	FontFamily string      `json:"font_family"`
	FontSize   int         `json:"font_size"`
	TextColor  string      `json:"text_color"`
	DataCode   string      `json:"data_code,omitempty"`
}

// IsConnector reports whether the element is drawn as a line or arrow
// (no fill, no border, no text).
func (e Element) IsConnector() bool {
	return e.Shape == ShapeLine || e.Shape == ShapeArrow
}

// Document is the in-memory form of one dashboard. An empty ID means the
// document has not been saved yet.
type Document struct {
	ID              string    `json:"id,omitempty"`
	Name            string    `json:"name"`
	Background      string    `json:"background"`
	BackgroundImage *string   `json:"background_image"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	Elements        []Element `json:"elements"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Record is the flat persisted shape of a dashboard row. Elements are kept
// as a single JSON array block.
type Record struct {
	ID              string
	Name            string
	Background      string
	BackgroundImage *string
	Width           int
	Height          int
	Elements        json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Summary is the list projection of a dashboard.
type Summary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Background string    `json:"background"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateInput carries the fields of a new dashboard. Nil optional fields
// take the canvas defaults.
type CreateInput struct {
	Name            string
	Background      *string
	BackgroundImage *string
	Width           *int
	Height          *int
	Elements        []Element
}

// UpdateInput is a partial update. Nil fields are left unchanged;
// BackgroundImage is applied only when SetBackgroundImage is true so that
// it can be cleared.
type UpdateInput struct {
	Name               *string
	Background         *string
	Width              *int
	Height             *int
	SetBackgroundImage bool
	BackgroundImage    *string
	Elements           []Element
}

// RecordPatch is the storage-level form of UpdateInput. Elements, when
// non-nil, replace the whole stored block.
type RecordPatch struct {
	Name               *string
	Background         *string
	Width              *int
	Height             *int
	SetBackgroundImage bool
	BackgroundImage    *string
	Elements           json.RawMessage
}
