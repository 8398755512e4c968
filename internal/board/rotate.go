package board

import (
	"math"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Rotate turns the piece a quarter turn clockwise about the rounded centroid
// of its cells, then shifts the result back inside the board if the turn
// pushed it past an edge.
//
// The returned piece is not checked against the committed grid; callers keep
// the original when the rotated piece collides.
func (p Piece) Rotate() Piece {
	pts := p.grid.Cells()
	if len(pts) == 0 {
		return p
	}

	cx, cy := centroid(pts)
	for i, pt := range pts {
		pts[i] = Point{
			X: cx + (pt.Y - cy),
			Y: cy - (pt.X - cx),
		}
	}
	fitInside(pts, p.grid.columns, p.grid.rows)

	return Piece{
		grid:  NewGrid(p.grid.columns, p.grid.rows).With(p.color, pts...),
		shape: p.shape,
		color: p.color,
	}
}

// centroid returns the mean cell position, rounded half to even on each axis.
func centroid(pts []Point) (int, int) {
	var sx, sy int
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return int(math.RoundToEven(float64(sx) / n)), int(math.RoundToEven(float64(sy) / n))
}

// fitInside shifts pts in place so their bounding box lies within
// [0, columns) × [0, rows) on every axis where it fits.
func fitInside(pts []Point, columns, rows int) {
	minX, maxX, minY, maxY := bounds(pts)

	dx := 0
	if minX < 0 {
		dx = -minX
	} else if maxX >= columns {
		dx = columns - 1 - maxX
	}
	dy := 0
	if minY < 0 {
		dy = -minY
	} else if maxY >= rows {
		dy = rows - 1 - maxY
	}

	for i := range pts {
		pts[i].X += dx
		pts[i].Y += dy
	}
}

func bounds(pts []Point) (minX, maxX, minY, maxY int) {
	minX, maxX = pts[0].X, pts[0].X
	minY, maxY = pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX = core.Min(minX, p.X)
		maxX = core.Max(maxX, p.X)
		minY = core.Min(minY, p.Y)
		maxY = core.Max(maxY, p.Y)
	}
	return minX, maxX, minY, maxY
}
