package ripple

// HeightField stores surface displacement in two buffers whose read/write roles
// alternate every tick.
type HeightField struct {
	buffers [2]Grid
	cur     int
}

// NewHeightField allocates both height buffers.
func NewHeightField(size int) *HeightField {
	return &HeightField{
		buffers: [2]Grid{NewGrid(size), NewGrid(size)},
	}
}

// Current returns the buffer holding the latest heights.
func (h *HeightField) Current() Grid {
	return h.buffers[h.cur]
}

// Back returns the buffer the next step writes into.
func (h *HeightField) Back() Grid {
	return h.buffers[1-h.cur]
}

// Swap flips the buffer roles. No cells are copied.
func (h *HeightField) Swap() {
	h.cur = 1 - h.cur
}

// Clear zeroes both buffers.
func (h *HeightField) Clear() {
	h.buffers[0].Clear()
	h.buffers[1].Clear()
}

// VelocityField holds per-axis velocity for every cell.
type VelocityField struct {
	X Grid
	Y Grid
}

// NewVelocityField allocates both velocity components.
func NewVelocityField(size int) *VelocityField {
	return &VelocityField{X: NewGrid(size), Y: NewGrid(size)}
}

// Magnitude returns |vx|+|vy| at (x, y).
func (v *VelocityField) Magnitude(x, y int) float32 {
	i := v.X.Index(x, y)
	return abs32(v.X.Data[i]) + abs32(v.Y.Data[i])
}

// Clear zeroes both components.
func (v *VelocityField) Clear() {
	v.X.Clear()
	v.Y.Clear()
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
