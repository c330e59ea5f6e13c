// Package viewport maps between screen pixels and ripple grid cells.
package viewport

// Viewport stretches a square simulation grid over a screen-space rectangle.
// The mapping is linear per axis: grid = screen * GridSize / viewport.
type Viewport struct {
	// Viewport dimensions in screen pixels
	W, H float32

	// Cells per side of the simulation grid
	GridSize int
}

// New creates a viewport covering a w×h screen area with a gridSize×gridSize grid.
func New(w, h float32, gridSize int) *Viewport {
	return &Viewport{W: w, H: h, GridSize: gridSize}
}

// ScreenToGrid converts screen coordinates into fractional grid coordinates.
// Points outside the viewport map outside [0, GridSize).
func (v *Viewport) ScreenToGrid(sx, sy float32) (gx, gy float32) {
	n := float32(v.GridSize)
	return sx * n / v.W, sy * n / v.H
}

// GridToScreen converts grid coordinates back to screen coordinates.
func (v *Viewport) GridToScreen(gx, gy float32) (sx, sy float32) {
	n := float32(v.GridSize)
	return gx * v.W / n, gy * v.H / n
}

// CellSize returns the on-screen size of one grid cell.
func (v *Viewport) CellSize() (w, h float32) {
	n := float32(v.GridSize)
	return v.W / n, v.H / n
}

// Contains reports whether a screen point lies inside the viewport.
func (v *Viewport) Contains(sx, sy float32) bool {
	return sx >= 0 && sy >= 0 && sx < v.W && sy < v.H
}

// Resize updates the viewport dimensions. Zero or negative sizes are ignored so a
// minimized window keeps its last usable mapping.
func (v *Viewport) Resize(w, h float32) {
	if w <= 0 || h <= 0 {
		return
	}
	v.W = w
	v.H = h
}
