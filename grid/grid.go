// Package grid is a square passability map usable as an astar.Capability.
//
// Moves go to any of the eight surrounding cells. By default an orthogonal
// step costs 1 and a diagonal step costs 0.1, which strongly favours
// diagonal movement, and the estimate is the straight-line distance.
package grid

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
)

const (
	// DefaultSize is the side length of a generated map.
	DefaultSize = 20
	// DefaultObstruction is the probability that a generated cell is blocked.
	DefaultObstruction = 0.25

	DefaultOrthogonalCost = 1.0
	DefaultDiagonalCost   = 0.1
)

// ErrNoPassableCell is returned by RandomPassable on a fully blocked grid.
var ErrNoPassableCell = errors.New("grid has no passable cell")

// Point is a cell coordinate. X grows to the right, Y grows upwards.
type Point struct {
	X, Y int
}

// offsets lists the candidate moves in the order they are offered to the search.
var offsets = [...]Point{
	{1, 1}, {1, 0}, {1, -1}, {0, 1},
	{-1, 1}, {-1, 0}, {-1, -1}, {0, -1},
}

// Grid is a size x size map of passable and blocked cells.
// It is not modified by searches and may be shared between them once built.
type Grid struct {
	size     int
	passable []bool

	OrthogonalCost float64
	DiagonalCost   float64
}

// New returns a fully passable grid.
func New(size int) *Grid {
	size = max(size, 0)
	g := &Grid{
		size:           size,
		passable:       make([]bool, size*size),
		OrthogonalCost: DefaultOrthogonalCost,
		DiagonalCost:   DefaultDiagonalCost,
	}
	for i := range g.passable {
		g.passable[i] = true
	}
	return g
}

// Generate returns a grid whose cells are each blocked with probability obstructed.
func Generate(size int, obstructed float64, rng *rand.Rand) *Grid {
	g := New(size)
	for i := range g.passable {
		g.passable[i] = obstructed < rng.Float64()
	}
	return g
}

// Size is the side length of the grid.
func (g *Grid) Size() int { return g.size }

func (g *Grid) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// SetPassable marks a cell; out-of-bounds points are ignored.
func (g *Grid) SetPassable(p Point, passable bool) {
	if g.inBounds(p) {
		g.passable[p.Y*g.size+p.X] = passable
	}
}

// Block marks every given cell as impassable.
func (g *Grid) Block(points ...Point) {
	for _, p := range points {
		g.SetPassable(p, false)
	}
}

// ListAdjacentNodes returns all eight surrounding cells, including off-grid ones.
func (g *Grid) ListAdjacentNodes(p Point) []Point {
	adjacent := make([]Point, 0, len(offsets))
	for _, d := range offsets {
		adjacent = append(adjacent, Point{p.X + d.X, p.Y + d.Y})
	}
	return adjacent
}

// NodeIsPassable is false for blocked and off-grid cells.
func (g *Grid) NodeIsPassable(p Point) bool {
	return g.inBounds(p) && g.passable[p.Y*g.size+p.X]
}

// CalculateMoveCost prices a single step between adjacent cells.
func (g *Grid) CalculateMoveCost(from, to Point) float64 {
	if from.X != to.X && from.Y != to.Y {
		return g.DiagonalCost
	}
	return g.OrthogonalCost
}

// EstimateCost is the Euclidean distance between two cells.
func (g *Grid) EstimateCost(from, to Point) float64 {
	return math.Hypot(float64(to.X-from.X), float64(to.Y-from.Y))
}

// RandomPassable picks a uniformly random passable cell.
func (g *Grid) RandomPassable(rng *rand.Rand) (Point, error) {
	free := 0
	for _, ok := range g.passable {
		if ok {
			free++
		}
	}
	if free == 0 {
		return Point{}, ErrNoPassableCell
	}
	pick := rng.IntN(free)
	for i, ok := range g.passable {
		if !ok {
			continue
		}
		if pick == 0 {
			return Point{X: i % g.size, Y: i / g.size}, nil
		}
		pick--
	}
	return Point{}, ErrNoPassableCell
}

// String renders the grid with '.' for passable and '#' for blocked cells,
// highest row first.
func (g *Grid) String() string {
	return g.render(func(p Point) (byte, bool) { return 0, false })
}

// Render draws the grid with the origin as 'O', the destination as 'D' and
// the remaining path cells as 'x'. Free cells are blank.
func (g *Grid) Render(origin, destination Point, path []Point) string {
	onPath := make(map[Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}
	return g.render(func(p Point) (byte, bool) {
		switch {
		case p == origin:
			return 'O', true
		case p == destination:
			return 'D', true
		case onPath[p]:
			return 'x', true
		case g.NodeIsPassable(p):
			return ' ', true
		}
		return 0, false
	})
}

func (g *Grid) render(overlay func(Point) (byte, bool)) string {
	var b strings.Builder
	b.Grow(g.size * (2*g.size + 1))
	for y := g.size - 1; y >= 0; y-- {
		for x := 0; x < g.size; x++ {
			p := Point{x, y}
			if c, ok := overlay(p); ok {
				b.WriteByte(c)
			} else if g.NodeIsPassable(p) {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
