package board

import "github.com/vovakirdan/tui-tetris/internal/core"

// Piece is the falling tetromino: its occupied cells on a board-sized grid,
// the shape it was spawned from and the color it carries.
type Piece struct {
	grid  Grid
	shape Shape
	color core.Color
}

// NewPiece places the given points on a columns × rows grid.
// Points outside the grid are dropped.
func NewPiece(shape Shape, columns, rows int, pts ...Point) Piece {
	color := shape.Color()
	return Piece{
		grid:  NewGrid(columns, rows).With(color, pts...),
		shape: shape,
		color: color,
	}
}

// Spawn returns a new piece of the given shape horizontally centred with its
// top cell on the top row.
func Spawn(shape Shape, columns, rows int) Piece {
	w, h := shape.Extent()
	dx := core.Clamp(columns/2-1, 0, core.Max(columns-w, 0))
	dy := rows - h

	layout := shape.Layout()
	for i := range layout {
		layout[i].X += dx
		layout[i].Y += dy
	}
	return NewPiece(shape, columns, rows, layout...)
}

// Grid returns the piece's occupancy grid.
func (p Piece) Grid() Grid { return p.grid }

// Shape returns the shape the piece was spawned from.
func (p Piece) Shape() Shape { return p.shape }

// Color returns the color carried by every cell of the piece.
func (p Piece) Color() core.Color { return p.color }

// Cells returns the occupied board coordinates of the piece.
func (p Piece) Cells() []Point { return p.grid.Cells() }

// IsZero reports whether p is the zero Piece.
func (p Piece) IsZero() bool { return p.grid.cells == nil }

// Collides reports whether the piece overlaps an occupied cell of g.
func (p Piece) Collides(g Grid) bool {
	return Collide(p.grid, g)
}

// Translate shifts the piece by (dx, dy).
// If any cell would leave the board on the left, the right or the bottom, the
// original piece is returned unchanged. Leaving past the top is not rejected:
// cells shifted above the top row are dropped, so the result may hold fewer
// cells than p. Gameplay only moves pieces sideways and down.
func (p Piece) Translate(dx, dy int) Piece {
	moved, _ := p.TryTranslate(dx, dy)
	return moved
}

// TryTranslate is Translate that also reports whether the shift was applied.
// An upward shift past the top row is applied and loses the cells above it.
func (p Piece) TryTranslate(dx, dy int) (Piece, bool) {
	g := p.grid
	if g.IsEmpty() {
		return p, false
	}
	if g.MaxX()+dx >= g.columns || g.MinX()+dx < 0 || g.MinY()+dy < 0 {
		return p, false
	}

	pts := g.Cells()
	for i := range pts {
		pts[i].X += dx
		pts[i].Y += dy
	}
	return Piece{
		grid:  NewGrid(g.columns, g.rows).With(p.color, pts...),
		shape: p.shape,
		color: p.color,
	}, true
}
