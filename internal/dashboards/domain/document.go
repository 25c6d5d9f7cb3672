package domain

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

const (
	// drop offsets center a freshly dragged palette item under the cursor
	dropOffsetX = 90
	dropOffsetY = 60
	dropMargin  = 8
	dropSpanX   = 380
	dropSpanY   = 260

	moveOffsetX = 40
	moveOffsetY = 28

	duplicateOffset = 24

	MinElementWidth  = 50
	MaxElementWidth  = 500
	MinElementHeight = 10
	MaxElementHeight = 500
	MinFontSize      = 12
	MaxFontSize      = 48

	DefaultFontFamily = "Pretendard"
	DefaultFontSize   = 22
	DefaultTextColor  = "#111827"

	UntitledName = "제목 없음"
)

type elementDefaults struct {
	elType ElementType
	shape  ShapeKind
	width  float64
	height float64
	label  string
	value  string
}

var palette = map[PaletteItem]elementDefaults{
	PaletteChart:    {ElementChart, "", 360, 240, "차트 위젯", ""},
	PaletteLine:     {ElementShape, ShapeLine, 180, 16, "선", ""},
	PaletteArrow:    {ElementShape, ShapeArrow, 180, 30, "화살표", ""},
	PaletteRect:     {ElementShape, ShapeRect, 210, 140, "사각형 지표", "DB 값"},
	PaletteCircle:   {ElementShape, ShapeCircle, 140, 140, "원형 지표", "DB 값"},
	PaletteTriangle: {ElementShape, ShapeTriangle, 210, 140, "삼각형 지표", "DB 값"},
	PaletteDiamond:  {ElementShape, ShapeDiamond, 210, 140, "마름모 지표", "DB 값"},
}

// ElementPatch is a property-panel edit. Nil fields are left unchanged.
type ElementPatch struct {
	Label      *string  `json:"label,omitempty"`
	Value      *string  `json:"value,omitempty"`
	FontFamily *string  `json:"font_family,omitempty"`
	FontSize   *int     `json:"font_size,omitempty"`
	TextColor  *string  `json:"text_color,omitempty"`
	DataCode   *string  `json:"data_code,omitempty"`
	Width      *float64 `json:"width,omitempty"`
	Height     *float64 `json:"height,omitempty"`
}

// NewDocument returns an empty, unsaved document named after the tab index.
func NewDocument(index int) Document {
	return Document{
		Name:       fmt.Sprintf("대시보드 %d", index),
		Background: DefaultBackground,
		Width:      CanvasWidth,
		Height:     CanvasHeight,
		Elements:   []Element{},
	}
}

// DropPosition converts a canvas-relative pointer into the top-left corner of
// a dropped element on a cw×ch canvas.
func DropPosition(pointer Point, cw, ch float64) Point {
	return Point{
		X: max(dropMargin, min(pointer.X-dropOffsetX, cw-dropSpanX)),
		Y: max(dropMargin, min(pointer.Y-dropOffsetY, ch-dropSpanY)),
	}
}

// MovePosition converts a drag-release pointer into the element's new corner.
func MovePosition(pointer Point) Point {
	return Point{X: pointer.X - moveOffsetX, Y: pointer.Y - moveOffsetY}
}

func IsPaletteItem(item PaletteItem) bool {
	_, ok := palette[item]
	return ok
}

func IsFontFamily(name string) bool {
	return slices.Contains(FontFamilies, name)
}

// NewElement builds an element of the given palette kind at the given corner.
// The bounding box is clamped into a cw×ch canvas.
func NewElement(item PaletteItem, at Point, cw, ch float64) (Element, error) {
	d, ok := palette[item]
	if !ok {
		return Element{}, fmt.Errorf("%w: unknown palette item %q", ErrValidation, item)
	}

	el := Element{
		ID:         uuid.NewString(),
		Type:       d.elType,
		Shape:      d.shape,
		Width:      d.width,
		Height:     d.height,
		Label:      d.label,
		Value:      d.value,
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		TextColor:  DefaultTextColor,
	}
	el.X, el.Y = clampInto(at, el.Width, el.Height, cw, ch)
	return el, nil
}

// IndexOf returns the position of the element in the paint order, or -1.
func (d Document) IndexOf(id string) int {
	return slices.IndexFunc(d.Elements, func(e Element) bool { return e.ID == id })
}

// Element looks up an element by id.
func (d Document) Element(id string) (Element, bool) {
	i := d.IndexOf(id)
	if i < 0 {
		return Element{}, false
	}
	return d.Elements[i], true
}

// AddElement appends the element on top of the paint order.
func AddElement(doc Document, el Element) Document {
	out := doc
	out.Elements = append(slices.Clone(doc.Elements), el)
	return out
}

func MoveElement(doc Document, id string, to Point) (Document, error) {
	return withElement(doc, id, func(el *Element) {
		w, h := doc.CanvasSize()
		el.X, el.Y = clampInto(to, el.Width, el.Height, w, h)
	})
}

func ResizeElement(doc Document, id string, width, height float64) (Document, error) {
	return withElement(doc, id, func(el *Element) {
		el.Width = clampFloat(width, MinElementWidth, MaxElementWidth)
		el.Height = clampFloat(height, MinElementHeight, MaxElementHeight)
	})
}

// UpdateElement applies a property-panel patch. Numeric fields are clamped to
// their ranges; an unknown font family rejects the whole patch.
func UpdateElement(doc Document, id string, patch ElementPatch) (Document, error) {
	if patch.FontFamily != nil && !IsFontFamily(*patch.FontFamily) {
		return doc, fmt.Errorf("%w: unsupported font family %q", ErrValidation, *patch.FontFamily)
	}

	return withElement(doc, id, func(el *Element) {
		if patch.Label != nil {
			el.Label = *patch.Label
		}
		if patch.Value != nil {
			el.Value = *patch.Value
		}
		if patch.FontFamily != nil {
			el.FontFamily = *patch.FontFamily
		}
		if patch.FontSize != nil {
			el.FontSize = min(max(*patch.FontSize, MinFontSize), MaxFontSize)
		}
		if patch.TextColor != nil {
			el.TextColor = *patch.TextColor
		}
		if patch.DataCode != nil {
			el.DataCode = *patch.DataCode
		}
		if patch.Width != nil {
			el.Width = clampFloat(*patch.Width, MinElementWidth, MaxElementWidth)
		}
		if patch.Height != nil {
			el.Height = clampFloat(*patch.Height, MinElementHeight, MaxElementHeight)
		}
	})
}

// DuplicateElement clones the element under a new id, shifted down and right,
// and places the copy on top.
func DuplicateElement(doc Document, id string) (Document, Element, error) {
	src, ok := doc.Element(id)
	if !ok {
		return doc, Element{}, ErrElementNotFound
	}

	cp := src
	cp.ID = uuid.NewString()
	w, h := doc.CanvasSize()
	cp.X, cp.Y = clampInto(Point{X: src.X + duplicateOffset, Y: src.Y + duplicateOffset}, cp.Width, cp.Height, w, h)

	return AddElement(doc, cp), cp, nil
}

func DeleteElement(doc Document, id string) (Document, error) {
	i := doc.IndexOf(id)
	if i < 0 {
		return doc, ErrElementNotFound
	}
	out := doc
	out.Elements = slices.Delete(slices.Clone(doc.Elements), i, i+1)
	return out, nil
}

// RaiseToFront moves the element to the end of the paint order.
func RaiseToFront(doc Document, id string) (Document, error) {
	i := doc.IndexOf(id)
	if i < 0 {
		return doc, ErrElementNotFound
	}
	el := doc.Elements[i]
	rest := slices.Delete(slices.Clone(doc.Elements), i, i+1)

	out := doc
	out.Elements = append(rest, el)
	return out, nil
}

// SendToBack moves the element to the start of the paint order.
func SendToBack(doc Document, id string) (Document, error) {
	i := doc.IndexOf(id)
	if i < 0 {
		return doc, ErrElementNotFound
	}
	el := doc.Elements[i]
	rest := slices.Delete(slices.Clone(doc.Elements), i, i+1)

	out := doc
	out.Elements = append([]Element{el}, rest...)
	return out, nil
}

func withElement(doc Document, id string, fn func(el *Element)) (Document, error) {
	i := doc.IndexOf(id)
	if i < 0 {
		return doc, ErrElementNotFound
	}
	out := doc
	out.Elements = slices.Clone(doc.Elements)
	fn(&out.Elements[i])
	return out, nil
}

// CanvasSize returns the document's canvas size, falling back to the default
// for unset dimensions.
func (d Document) CanvasSize() (float64, float64) {
	w, h := d.Width, d.Height
	if w <= 0 {
		w = CanvasWidth
	}
	if h <= 0 {
		h = CanvasHeight
	}
	return float64(w), float64(h)
}

// clampInto keeps a w×h box anchored at p inside a cw×ch canvas. A box larger
// than the canvas is pinned to the origin.
func clampInto(p Point, w, h, cw, ch float64) (float64, float64) {
	return clampFloat(p.X, 0, max(0, cw-w)), clampFloat(p.Y, 0, max(0, ch-h))
}

func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
