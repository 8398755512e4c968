package board

import (
	"fmt"
	"math/rand"
)

// Generator yields the shape of each newly spawned piece.
type Generator interface {
	Next() Shape
}

// Randomizer names accepted by NewGenerator.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// NewGenerator returns the generator registered under name.
func NewGenerator(name string, rng *rand.Rand) (Generator, error) {
	switch name {
	case RandomizerUniform, "":
		return NewUniformGenerator(rng), nil
	case RandomizerBag:
		return NewBagGenerator(rng), nil
	default:
		return nil, fmt.Errorf("board: unknown randomizer %q", name)
	}
}

// UniformGenerator picks every shape independently with equal probability.
type UniformGenerator struct {
	rng *rand.Rand
}

// NewUniformGenerator returns a generator drawing from rng.
func NewUniformGenerator(rng *rand.Rand) *UniformGenerator {
	return &UniformGenerator{rng: rng}
}

// Next returns a uniformly random shape.
func (g *UniformGenerator) Next() Shape {
	return Shapes[g.rng.Intn(len(Shapes))]
}

// BagGenerator deals all seven shapes in a shuffled order before reshuffling,
// so no shape is absent for more than twelve pieces in a row.
type BagGenerator struct {
	rng *rand.Rand
	bag []Shape
}

// NewBagGenerator returns a generator shuffling its bags with rng.
func NewBagGenerator(rng *rand.Rand) *BagGenerator {
	return &BagGenerator{rng: rng}
}

// Next deals the next shape of the current bag, refilling it when empty.
func (g *BagGenerator) Next() Shape {
	if len(g.bag) == 0 {
		g.bag = append(g.bag[:0], Shapes...)
		g.rng.Shuffle(len(g.bag), func(i, j int) {
			g.bag[i], g.bag[j] = g.bag[j], g.bag[i]
		})
	}
	s := g.bag[0]
	g.bag = g.bag[1:]
	return s
}

// SequenceGenerator cycles through a fixed list of shapes.
type SequenceGenerator struct {
	shapes []Shape
	pos    int
}

// NewSequenceGenerator returns a generator repeating shapes in order.
// An empty list yields ShapeSquare forever.
func NewSequenceGenerator(shapes ...Shape) *SequenceGenerator {
	if len(shapes) == 0 {
		shapes = []Shape{ShapeSquare}
	}
	return &SequenceGenerator{shapes: shapes}
}

// Next returns the following shape in the list, wrapping at the end.
func (g *SequenceGenerator) Next() Shape {
	s := g.shapes[g.pos%len(g.shapes)]
	g.pos++
	return s
}
