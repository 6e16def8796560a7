package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange reports direct cell access outside the grid bounds.
	ErrOutOfRange = errors.New("coordinates out of range")
	// ErrInvalidSize reports a grid constructed with non-positive dimensions.
	ErrInvalidSize = errors.New("invalid grid size")
)

// FloatGrid stores a 2D grid of float32 cell values in row-major order.
//
// Direct access through At, Set, Add and Mul is bounds checked. Wraparound is
// only applied by Wrap and NeighborSum. FloatGrid does no locking of its own;
// callers serialize writers against readers.
type FloatGrid struct {
	W, H int
	data []float32
}

// NewFloatGrid allocates a zero-filled grid with the given dimensions.
func NewFloatGrid(w, h int) (*FloatGrid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &FloatGrid{W: w, H: h, data: make([]float32, w*h)}, nil
}

// Size reports the grid dimensions.
func (g *FloatGrid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Cells() []float32 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// Contains reports whether (x, y) addresses a cell without wrapping.
func (g *FloatGrid) Contains(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *FloatGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

func (g *FloatGrid) checked(x, y int) (int, error) {
	if !g.Contains(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfRange, x, y, g.W, g.H)
	}
	return g.Index(x, y), nil
}

// At returns the value stored at (x, y).
func (g *FloatGrid) At(x, y int) (float32, error) {
	idx, err := g.checked(x, y)
	if err != nil {
		return 0, err
	}
	return g.data[idx], nil
}

// Set assigns v to the cell at (x, y).
func (g *FloatGrid) Set(x, y int, v float32) error {
	idx, err := g.checked(x, y)
	if err != nil {
		return err
	}
	g.data[idx] = v
	return nil
}

// Add adds delta to the cell at (x, y).
func (g *FloatGrid) Add(x, y int, delta float32) error {
	idx, err := g.checked(x, y)
	if err != nil {
		return err
	}
	g.data[idx] += delta
	return nil
}

// Mul multiplies the cell at (x, y) by factor.
func (g *FloatGrid) Mul(x, y int, factor float32) error {
	idx, err := g.checked(x, y)
	if err != nil {
		return err
	}
	g.data[idx] *= factor
	return nil
}

// NeighborSum sums the window [-radius, radius) on both axes around (x, y),
// wrapping each coordinate independently. The window is asymmetric: radius
// cells before the origin and radius-1 after it, so radius 1 covers the 2x2
// block {x-1, x} by {y-1, y}.
func (g *FloatGrid) NeighborSum(x, y, radius int) float32 {
	var sum float32
	for dy := -radius; dy < radius; dy++ {
		ny := ((y+dy)%g.H + g.H) % g.H
		row := g.data[ny*g.W : (ny+1)*g.W]
		for dx := -radius; dx < radius; dx++ {
			nx := ((x+dx)%g.W + g.W) % g.W
			sum += row[nx]
		}
	}
	return sum
}

// Clear fills the grid with zeros.
func (g *FloatGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
