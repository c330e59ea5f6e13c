// Package ripple implements the touch-driven water ripple engine: a square height
// field coupled to a per-axis velocity field, impulse injection with drag
// interpolation, a damped wave step and a dirty-region tracker that bounds the work
// done per tick.
package ripple

// Grid is a fixed-size square grid of float32 values stored row-major.
// Cell (x, y) lives at index y*Size+x.
type Grid struct {
	Size int
	Data []float32
}

// NewGrid allocates a zeroed size×size grid.
func NewGrid(size int) Grid {
	return Grid{Size: size, Data: make([]float32, size*size)}
}

// Index returns the flat index of cell (x, y).
func (g Grid) Index(x, y int) int {
	return y*g.Size + x
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Size && y >= 0 && y < g.Size
}

// At returns the value at (x, y). Callers must stay in bounds.
func (g Grid) At(x, y int) float32 {
	return g.Data[y*g.Size+x]
}

// Set writes v at (x, y).
func (g Grid) Set(x, y int, v float32) {
	g.Data[y*g.Size+x] = v
}

// Add accumulates v into (x, y).
func (g Grid) Add(x, y int, v float32) {
	g.Data[y*g.Size+x] += v
}

// Clear zeroes every cell.
func (g Grid) Clear() {
	clear(g.Data)
}

// CopyRect copies the inclusive rectangle r from src into g. Both grids must share a size.
func (g Grid) CopyRect(src Grid, r Region) {
	for y := r.MinY; y <= r.MaxY; y++ {
		row := y * g.Size
		copy(g.Data[row+r.MinX:row+r.MaxX+1], src.Data[row+r.MinX:row+r.MaxX+1])
	}
}
