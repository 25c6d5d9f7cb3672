package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(doc Document) []string {
	out := make([]string, 0, len(doc.Elements))
	for _, el := range doc.Elements {
		out = append(out, el.ID)
	}
	return out
}

func docWith(t *testing.T, items ...PaletteItem) Document {
	t.Helper()
	doc := NewDocument(1)
	for i, item := range items {
		el, err := NewElement(item, Point{X: float64(20 * i), Y: float64(10 * i)}, CanvasWidth, CanvasHeight)
		require.NoError(t, err)
		doc = AddElement(doc, el)
	}
	return doc
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(3)

	assert.Equal(t, "대시보드 3", doc.Name)
	assert.Equal(t, DefaultBackground, doc.Background)
	assert.Nil(t, doc.BackgroundImage)
	assert.Equal(t, CanvasWidth, doc.Width)
	assert.Equal(t, CanvasHeight, doc.Height)
	assert.NotNil(t, doc.Elements)
	assert.Empty(t, doc.Elements)
	assert.Empty(t, doc.ID)
}

func TestDropPosition(t *testing.T) {
	tests := []struct {
		name    string
		pointer Point
		want    Point
	}{
		{"offset applied", Point{X: 300, Y: 200}, Point{X: 210, Y: 140}},
		{"near origin clamps to margin", Point{X: 10, Y: 10}, Point{X: 8, Y: 8}},
		{"far corner clamps", Point{X: 5000, Y: 5000}, Point{X: CanvasWidth - 380, Y: CanvasHeight - 260}},
	}

	t.Run("smaller canvas", func(t *testing.T) {
		assert.Equal(t, Point{X: 420, Y: 240}, DropPosition(Point{X: 1000, Y: 600}, 800, 500))
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DropPosition(tt.pointer, CanvasWidth, CanvasHeight))
		})
	}
}

func TestNewElement_Defaults(t *testing.T) {
	tests := []struct {
		item   PaletteItem
		typ    ElementType
		shape  ShapeKind
		width  float64
		height float64
		label  string
		value  string
	}{
		{PaletteChart, ElementChart, "", 360, 240, "차트 위젯", ""},
		{PaletteLine, ElementShape, ShapeLine, 180, 16, "선", ""},
		{PaletteArrow, ElementShape, ShapeArrow, 180, 30, "화살표", ""},
		{PaletteRect, ElementShape, ShapeRect, 210, 140, "사각형 지표", "DB 값"},
		{PaletteCircle, ElementShape, ShapeCircle, 140, 140, "원형 지표", "DB 값"},
		{PaletteTriangle, ElementShape, ShapeTriangle, 210, 140, "삼각형 지표", "DB 값"},
		{PaletteDiamond, ElementShape, ShapeDiamond, 210, 140, "마름모 지표", "DB 값"},
	}

	for _, tt := range tests {
		t.Run(string(tt.item), func(t *testing.T) {
			el, err := NewElement(tt.item, Point{X: 10, Y: 10}, CanvasWidth, CanvasHeight)
			require.NoError(t, err)

			assert.NotEmpty(t, el.ID)
			assert.Equal(t, tt.typ, el.Type)
			assert.Equal(t, tt.shape, el.Shape)
			assert.Equal(t, tt.width, el.Width)
			assert.Equal(t, tt.height, el.Height)
			assert.Equal(t, tt.label, el.Label)
			assert.Equal(t, tt.value, el.Value)
			assert.Equal(t, DefaultFontFamily, el.FontFamily)
			assert.Equal(t, DefaultFontSize, el.FontSize)
			assert.Equal(t, DefaultTextColor, el.TextColor)
			assert.Empty(t, el.DataCode)
			assert.Equal(t, tt.shape == ShapeLine || tt.shape == ShapeArrow, el.IsConnector())
		})
	}
}

func TestNewElement_StaysInsideCanvas(t *testing.T) {
	pointers := []Point{
		{X: -500, Y: -500},
		{X: 0, Y: 0},
		{X: 1190, Y: 690},
		{X: 99999, Y: 99999},
	}
	items := []PaletteItem{PaletteChart, PaletteLine, PaletteArrow, PaletteRect, PaletteCircle, PaletteTriangle, PaletteDiamond}

	canvases := []Point{{X: CanvasWidth, Y: CanvasHeight}, {X: 800, Y: 500}, {X: 400, Y: 260}}

	for _, c := range canvases {
		for _, item := range items {
			for _, p := range pointers {
				el, err := NewElement(item, DropPosition(p, c.X, c.Y), c.X, c.Y)
				require.NoError(t, err)

				assert.GreaterOrEqual(t, el.X, 0.0)
				assert.GreaterOrEqual(t, el.Y, 0.0)
				assert.LessOrEqual(t, el.X+el.Width, c.X)
				assert.LessOrEqual(t, el.Y+el.Height, c.Y)
			}
		}
	}
}

func TestNewElement_UnknownItem(t *testing.T) {
	_, err := NewElement("hexagon", Point{}, CanvasWidth, CanvasHeight)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDropRectangleScenario(t *testing.T) {
	doc := NewDocument(1)
	el, err := NewElement(PaletteRect, DropPosition(Point{X: 100, Y: 100}, CanvasWidth, CanvasHeight), CanvasWidth, CanvasHeight)
	require.NoError(t, err)
	doc = AddElement(doc, el)

	require.Len(t, doc.Elements, 1)
	got := doc.Elements[0]
	assert.Equal(t, 210.0, got.Width)
	assert.Equal(t, 140.0, got.Height)
	assert.GreaterOrEqual(t, got.X, 8.0)
	assert.GreaterOrEqual(t, got.Y, 8.0)
	assert.Equal(t, "사각형 지표", got.Label)
}

func TestMoveElement(t *testing.T) {
	doc := docWith(t, PaletteRect)
	id := doc.Elements[0].ID

	t.Run("applies drag offset", func(t *testing.T) {
		moved, err := MoveElement(doc, id, MovePosition(Point{X: 240, Y: 228}))
		require.NoError(t, err)
		assert.Equal(t, 200.0, moved.Elements[0].X)
		assert.Equal(t, 200.0, moved.Elements[0].Y)
	})

	t.Run("clamps to canvas", func(t *testing.T) {
		moved, err := MoveElement(doc, id, Point{X: 5000, Y: -20})
		require.NoError(t, err)
		assert.Equal(t, float64(CanvasWidth)-210, moved.Elements[0].X)
		assert.Equal(t, 0.0, moved.Elements[0].Y)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := doc.Elements[0]
		_, err := MoveElement(doc, id, Point{X: 400, Y: 400})
		require.NoError(t, err)
		assert.Equal(t, before, doc.Elements[0])
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		out, err := MoveElement(doc, "missing", Point{X: 1, Y: 1})
		assert.ErrorIs(t, err, ErrElementNotFound)
		assert.Equal(t, doc, out)
	})
}

func TestResizeElement(t *testing.T) {
	doc := docWith(t, PaletteRect)
	id := doc.Elements[0].ID

	out, err := ResizeElement(doc, id, 1000, 1)
	require.NoError(t, err)
	assert.Equal(t, 500.0, out.Elements[0].Width)
	assert.Equal(t, 10.0, out.Elements[0].Height)

	out, err = ResizeElement(doc, id, 20, 250)
	require.NoError(t, err)
	assert.Equal(t, 50.0, out.Elements[0].Width)
	assert.Equal(t, 250.0, out.Elements[0].Height)
}

func TestUpdateElement(t *testing.T) {
	doc := docWith(t, PaletteCircle)
	id := doc.Elements[0].ID

	label := "온도"
	code := "TEMP_001"
	size := 100
	font := "Georgia"

	out, err := UpdateElement(doc, id, ElementPatch{
		Label:      &label,
		DataCode:   &code,
		FontSize:   &size,
		FontFamily: &font,
	})
	require.NoError(t, err)

	el := out.Elements[0]
	assert.Equal(t, "온도", el.Label)
	assert.Equal(t, "TEMP_001", el.DataCode)
	assert.Equal(t, MaxFontSize, el.FontSize)
	assert.Equal(t, "Georgia", el.FontFamily)
	assert.Equal(t, "DB 값", el.Value)

	t.Run("rejects unknown font", func(t *testing.T) {
		bad := "Comic Sans"
		out, err := UpdateElement(doc, id, ElementPatch{FontFamily: &bad})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, doc, out)
	})

	t.Run("small font clamps up", func(t *testing.T) {
		tiny := 2
		out, err := UpdateElement(doc, id, ElementPatch{FontSize: &tiny})
		require.NoError(t, err)
		assert.Equal(t, MinFontSize, out.Elements[0].FontSize)
	})
}

func TestDuplicateElement(t *testing.T) {
	doc := docWith(t, PaletteRect, PaletteChart)
	src := doc.Elements[0]

	out, cp, err := DuplicateElement(doc, src.ID)
	require.NoError(t, err)

	require.Len(t, out.Elements, 3)
	assert.NotEqual(t, src.ID, cp.ID)
	assert.Equal(t, cp, out.Elements[2])
	assert.Equal(t, src.X+24, cp.X)
	assert.Equal(t, src.Y+24, cp.Y)
	assert.Equal(t, src.Label, cp.Label)

	seen := map[string]bool{}
	for _, id := range ids(out) {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	t.Run("clamps at canvas edge", func(t *testing.T) {
		edge, err := MoveElement(doc, src.ID, Point{X: 5000, Y: 5000})
		require.NoError(t, err)
		out, cp, err := DuplicateElement(edge, src.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(CanvasWidth)-cp.Width, cp.X)
		assert.Equal(t, float64(CanvasHeight)-cp.Height, cp.Y)
		assert.Len(t, out.Elements, 3)
	})
}

func TestDeleteElement(t *testing.T) {
	doc := docWith(t, PaletteRect, PaletteCircle, PaletteChart)
	want := []string{doc.Elements[0].ID, doc.Elements[2].ID}

	out, err := DeleteElement(doc, doc.Elements[1].ID)
	require.NoError(t, err)
	assert.Equal(t, want, ids(out))
	assert.Len(t, doc.Elements, 3)

	t.Run("missing id leaves document identical", func(t *testing.T) {
		before, err := Serialize(doc)
		require.NoError(t, err)

		out, err := DeleteElement(doc, "missing")
		assert.ErrorIs(t, err, ErrElementNotFound)

		after, err := Serialize(out)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestZOrder(t *testing.T) {
	doc := docWith(t, PaletteRect, PaletteCircle, PaletteChart, PaletteLine)
	a, b, c, d := doc.Elements[0].ID, doc.Elements[1].ID, doc.Elements[2].ID, doc.Elements[3].ID

	t.Run("send to back", func(t *testing.T) {
		two := docWith(t, PaletteRect, PaletteCircle)
		out, err := SendToBack(two, two.Elements[1].ID)
		require.NoError(t, err)
		assert.Equal(t, []string{two.Elements[1].ID, two.Elements[0].ID}, ids(out))
	})

	t.Run("raise to front", func(t *testing.T) {
		out, err := RaiseToFront(doc, b)
		require.NoError(t, err)
		assert.Equal(t, []string{a, c, d, b}, ids(out))
	})

	t.Run("raise then send back keeps others in order", func(t *testing.T) {
		out, err := RaiseToFront(doc, c)
		require.NoError(t, err)
		out, err = SendToBack(out, c)
		require.NoError(t, err)
		assert.Equal(t, []string{c, a, b, d}, ids(out))
	})

	t.Run("unknown id", func(t *testing.T) {
		out, err := RaiseToFront(doc, "missing")
		assert.ErrorIs(t, err, ErrElementNotFound)
		assert.Equal(t, doc, out)

		out, err = SendToBack(doc, "missing")
		assert.ErrorIs(t, err, ErrElementNotFound)
		assert.Equal(t, doc, out)
	})
}
