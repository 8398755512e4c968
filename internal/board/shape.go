package board

import "github.com/vovakirdan/tui-tetris/internal/core"

// Shape identifies one of the seven piece layouts.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeTri
	ShapeL
	ShapeLReverse
	ShapeS
	ShapeSReverse
	ShapeLine
)

// Shapes lists every shape in declaration order.
var Shapes = []Shape{
	ShapeSquare,
	ShapeTri,
	ShapeL,
	ShapeLReverse,
	ShapeS,
	ShapeSReverse,
	ShapeLine,
}

// layouts holds the local cells of each shape, anchored at (0, 0).
var layouts = map[Shape][]Point{
	ShapeSquare:   {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	ShapeTri:      {{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	ShapeL:        {{0, 0}, {1, 0}, {0, 1}, {0, 2}},
	ShapeLReverse: {{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	ShapeS:        {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	ShapeSReverse: {{0, 1}, {1, 1}, {1, 0}, {2, 0}},
	ShapeLine:     {{0, 0}, {1, 0}, {2, 0}, {3, 0}},
}

var shapeColors = map[Shape]core.Color{
	ShapeSquare:   core.ColorGreen,
	ShapeTri:      core.ColorMagenta,
	ShapeL:        core.ColorOrange,
	ShapeLReverse: core.ColorBlue,
	ShapeS:        core.ColorRed,
	ShapeSReverse: core.ColorBrightRed,
	ShapeLine:     core.ColorYellow,
}

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "Square"
	case ShapeTri:
		return "Tri"
	case ShapeL:
		return "L"
	case ShapeLReverse:
		return "LReverse"
	case ShapeS:
		return "S"
	case ShapeSReverse:
		return "SReverse"
	case ShapeLine:
		return "Line"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the seven shapes.
func (s Shape) Valid() bool {
	_, ok := layouts[s]
	return ok
}

// Color returns the block color of the shape.
func (s Shape) Color() core.Color {
	return shapeColors[s]
}

// Layout returns a copy of the shape's local cells.
func (s Shape) Layout() []Point {
	src := layouts[s]
	pts := make([]Point, len(src))
	copy(pts, src)
	return pts
}

// Extent returns the width and height of the shape's bounding box.
func (s Shape) Extent() (w, h int) {
	for _, p := range layouts[s] {
		w = core.Max(w, p.X+1)
		h = core.Max(h, p.Y+1)
	}
	return w, h
}
