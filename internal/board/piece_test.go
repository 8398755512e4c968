package board

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortPoints(pts []Point) []Point {
	out := append([]Point(nil), pts...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func TestSpawnPositions(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []Point
	}{
		{ShapeSquare, []Point{{4, 15}, {5, 15}, {4, 16}, {5, 16}}},
		{ShapeTri, []Point{{4, 15}, {5, 15}, {6, 15}, {5, 16}}},
		{ShapeL, []Point{{4, 14}, {5, 14}, {4, 15}, {4, 16}}},
		{ShapeLine, []Point{{4, 16}, {5, 16}, {6, 16}, {7, 16}}},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			p := Spawn(tt.shape, 10, 17)
			assert.Equal(t, sortPoints(tt.want), sortPoints(p.Cells()))
			assert.Equal(t, tt.shape.Color(), p.Color())
			assert.Equal(t, 16, p.Grid().MaxY(), "top cell on the top row")
		})
	}
}

func TestSpawnFitsNarrowBoard(t *testing.T) {
	for _, s := range Shapes {
		p := Spawn(s, 4, 4)
		assert.Len(t, p.Cells(), 4, s.String())
		assert.Equal(t, 3, p.Grid().MaxY(), s.String())
	}
}

func TestTranslate(t *testing.T) {
	p := Spawn(ShapeSquare, 10, 17)

	t.Run("accepted", func(t *testing.T) {
		moved := p.Translate(-1, -2)
		assert.Equal(t, 3, moved.Grid().MinX())
		assert.Equal(t, 13, moved.Grid().MinY())
		assert.Len(t, moved.Cells(), 4)
		assert.Equal(t, p.Color(), moved.Color())
	})

	t.Run("rejected at walls and floor", func(t *testing.T) {
		for _, d := range []Point{{-5, 0}, {5, 0}, {0, -16}} {
			assert.Equal(t, p.Cells(), p.Translate(d.X, d.Y).Cells(), "translate by %v", d)
		}
	})

	t.Run("cells past the top are dropped", func(t *testing.T) {
		moved, ok := p.TryTranslate(0, 1)
		require.True(t, ok)
		assert.Equal(t, []Point{{4, 16}, {5, 16}}, sortPoints(moved.Cells()))
		assert.Equal(t, p.Color(), moved.Color())
	})

	t.Run("original untouched", func(t *testing.T) {
		_ = p.Translate(1, -1)
		assert.Equal(t, 4, p.Grid().MinX())
		assert.Equal(t, 15, p.Grid().MinY())
	})
}

func TestRandomWalkStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	moves := []func(Piece) Piece{
		func(p Piece) Piece { return p.Translate(-1, 0) },
		func(p Piece) Piece { return p.Translate(1, 0) },
		func(p Piece) Piece { return p.Translate(0, -1) },
		func(p Piece) Piece { return p.Rotate() },
	}

	for _, s := range Shapes {
		p := Spawn(s, 10, 17)
		for i := 0; i < 500; i++ {
			p = moves[rng.Intn(len(moves))](p)
			require.Len(t, p.Cells(), 4, "%s lost cells after %d moves", s, i)
			for _, c := range p.Cells() {
				require.True(t, p.Grid().InBounds(c.X, c.Y), "%s out of bounds at %v", s, c)
			}
		}
	}
}

func TestPieceCollides(t *testing.T) {
	p := Spawn(ShapeLine, 10, 17)
	committed := NewGrid(10, 17).With(p.Color(), Point{7, 16})

	assert.True(t, p.Collides(committed))
	assert.False(t, p.Translate(0, -1).Collides(committed))
}

func TestTryTranslateReportsRejection(t *testing.T) {
	p := Spawn(ShapeLine, 10, 17)

	_, ok := p.TryTranslate(0, -1)
	assert.True(t, ok)

	_, ok = p.TryTranslate(3, 0)
	assert.False(t, ok)

	_, ok = Piece{}.TryTranslate(0, -1)
	assert.False(t, ok)
}
