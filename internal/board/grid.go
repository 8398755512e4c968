// Package board holds the playfield primitives: the committed grid, the
// falling piece and the geometric rotation of pieces.
//
// Every value in this package is immutable once constructed. Operations
// return new values, which lets the session hand grids and pieces to a
// renderer on another goroutine without copying or locking.
//
// Coordinates are (column, row) with row 0 at the bottom of the board.
package board

import (
	"sort"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Point is a board coordinate.
type Point struct {
	X, Y int
}

// Cell is the content of one board position.
// For a committed grid, Color is set if and only if Occupied is true.
type Cell struct {
	Occupied bool
	Color    core.Color
}

// Grid is a fixed-size occupancy and color matrix.
type Grid struct {
	columns int
	rows    int
	cells   []Cell // row-major, row 0 first
}

// NewGrid returns an empty grid of the given size.
func NewGrid(columns, rows int) Grid {
	if columns < 0 {
		columns = 0
	}
	if rows < 0 {
		rows = 0
	}
	return Grid{
		columns: columns,
		rows:    rows,
		cells:   make([]Cell, columns*rows),
	}
}

// ParseGrid builds a grid from text rows given top row first.
// '.' and ' ' are empty, any other rune is an occupied cell of the given color.
// The width is taken from the first row.
func ParseGrid(color core.Color, rows ...string) Grid {
	if len(rows) == 0 {
		return NewGrid(0, 0)
	}
	g := NewGrid(len([]rune(rows[0])), len(rows))
	for i, line := range rows {
		y := g.rows - 1 - i
		for x, r := range []rune(line) {
			if x >= g.columns || r == '.' || r == ' ' {
				continue
			}
			g.cells[g.index(x, y)] = Cell{Occupied: true, Color: color}
		}
	}
	return g
}

// Columns returns the grid width.
func (g Grid) Columns() int { return g.columns }

// Rows returns the grid height.
func (g Grid) Rows() int { return g.rows }

// InBounds reports whether (x, y) lies inside the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.columns && y >= 0 && y < g.rows
}

func (g Grid) index(x, y int) int {
	return y*g.columns + x
}

// At returns the cell at (x, y), or an empty cell when out of bounds.
func (g Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{}
	}
	return g.cells[g.index(x, y)]
}

// Occupied reports whether the cell at (x, y) is filled.
func (g Grid) Occupied(x, y int) bool {
	return g.At(x, y).Occupied
}

func (g Grid) clone() Grid {
	c := Grid{columns: g.columns, rows: g.rows, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// With returns a copy of the grid with the given points filled in the given color.
// Points outside the grid are ignored.
func (g Grid) With(color core.Color, pts ...Point) Grid {
	c := g.clone()
	for _, p := range pts {
		if c.InBounds(p.X, p.Y) {
			c.cells[c.index(p.X, p.Y)] = Cell{Occupied: true, Color: color}
		}
	}
	return c
}

// Cells returns the coordinates of every occupied cell, column by column.
func (g Grid) Cells() []Point {
	var pts []Point
	for x := 0; x < g.columns; x++ {
		for y := 0; y < g.rows; y++ {
			if g.cells[g.index(x, y)].Occupied {
				pts = append(pts, Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Count returns the number of occupied cells.
func (g Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c.Occupied {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no cell is occupied.
func (g Grid) IsEmpty() bool {
	return g.Count() == 0
}

// MinX returns the lowest occupied column, or 0 for an empty grid.
func (g Grid) MinX() int {
	for x := 0; x < g.columns; x++ {
		for y := 0; y < g.rows; y++ {
			if g.cells[g.index(x, y)].Occupied {
				return x
			}
		}
	}
	return 0
}

// MaxX returns the highest occupied column, or 0 for an empty grid.
func (g Grid) MaxX() int {
	for x := g.columns - 1; x >= 0; x-- {
		for y := 0; y < g.rows; y++ {
			if g.cells[g.index(x, y)].Occupied {
				return x
			}
		}
	}
	return 0
}

// MinY returns the lowest occupied row, or 0 for an empty grid.
func (g Grid) MinY() int {
	for y := 0; y < g.rows; y++ {
		if g.rowOccupied(y) {
			return y
		}
	}
	return 0
}

// MaxY returns the highest occupied row, or 0 for an empty grid.
func (g Grid) MaxY() int {
	for y := g.rows - 1; y >= 0; y-- {
		if g.rowOccupied(y) {
			return y
		}
	}
	return 0
}

func (g Grid) rowOccupied(y int) bool {
	for x := 0; x < g.columns; x++ {
		if g.cells[g.index(x, y)].Occupied {
			return true
		}
	}
	return false
}

// Row returns a copy of row y, or nil when out of bounds.
func (g Grid) Row(y int) []Cell {
	if y < 0 || y >= g.rows {
		return nil
	}
	row := make([]Cell, g.columns)
	copy(row, g.cells[g.index(0, y):g.index(0, y+1)])
	return row
}

// FullLines returns the indices of fully occupied rows, highest first.
// Removing rows in this order keeps the remaining indices valid.
func (g Grid) FullLines() []int {
	var lines []int
	for y := 0; y < g.rows; y++ {
		full := g.columns > 0
		for x := 0; x < g.columns; x++ {
			if !g.cells[g.index(x, y)].Occupied {
				full = false
				break
			}
		}
		if full {
			lines = append(lines, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lines)))
	return lines
}

// RemoveRow returns a grid with the given row deleted: every row above it moves
// down by one and the top row becomes empty. Out-of-range rows leave the grid unchanged.
func (g Grid) RemoveRow(row int) Grid {
	if row < 0 || row >= g.rows {
		return g
	}
	c := g.clone()
	for y := row; y < c.rows-1; y++ {
		copy(c.cells[c.index(0, y):c.index(0, y+1)], c.cells[c.index(0, y+1):c.index(0, y+2)])
	}
	top := c.index(0, c.rows-1)
	for i := top; i < top+c.columns; i++ {
		c.cells[i] = Cell{}
	}
	return c
}

// Collide reports whether any cell is occupied in both grids.
// Only the overlapping area of differently sized grids is compared.
func Collide(a, b Grid) bool {
	columns := core.Min(a.columns, b.columns)
	rows := core.Min(a.rows, b.rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			if a.cells[a.index(x, y)].Occupied && b.cells[b.index(x, y)].Occupied {
				return true
			}
		}
	}
	return false
}

// Merge returns the union of both grids using a's dimensions.
// The color of a cell comes from a when set there, otherwise from b.
// Overlap is not checked; callers test Collide first when it matters.
func Merge(a, b Grid) Grid {
	m := a.clone()
	for y := 0; y < core.Min(a.rows, b.rows); y++ {
		for x := 0; x < core.Min(a.columns, b.columns); x++ {
			i := m.index(x, y)
			other := b.cells[b.index(x, y)]
			m.cells[i].Occupied = m.cells[i].Occupied || other.Occupied
			if !m.cells[i].Color.IsSet() {
				m.cells[i].Color = other.Color
			}
		}
	}
	return m
}

// String renders the grid top row first using '#' and '.'.
func (g Grid) String() string {
	var sb strings.Builder
	for y := g.rows - 1; y >= 0; y-- {
		for x := 0; x < g.columns; x++ {
			if g.cells[g.index(x, y)].Occupied {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
