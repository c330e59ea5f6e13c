package ripple

import "sync"

// Engine owns the height field, velocity field and dirty-region tracker of one
// ripple surface. Every method takes the same mutex, so input handlers, the tick
// driver and the renderer may call it from different goroutines. Lock hold time is
// bounded by one sweep of the affected region.
type Engine struct {
	mu sync.Mutex

	size     int
	params   Params
	heights  *HeightField
	velocity *VelocityField
	tracker  *Tracker

	tiltX, tiltY float32
	ticks        uint64
}

// NewEngine allocates an engine for a size×size grid. Sizes below 3 leave no
// interior cells and fail with ErrInvalidConfiguration, as do out-of-range params.
func NewEngine(size int, params Params) (*Engine, error) {
	if err := validate(size, params); err != nil {
		return nil, err
	}
	return &Engine{
		size:     size,
		params:   params,
		heights:  NewHeightField(size),
		velocity: NewVelocityField(size),
		tracker:  NewTracker(size),
	}, nil
}

// ApplyImpulse injects a touch at grid coordinates (px, py). Pressure is clamped to
// [MinPressure, MaxPressure]; coordinates off the grid write nothing.
func (e *Engine) ApplyImpulse(px, py, pressure float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyImpulse(cellIndex(px), cellIndex(py), clampPressure(pressure), e.impulseDamping())
}

// ApplyDrag injects impulses along a pointer move from (fromX, fromY) to (toX, toY),
// all in grid coordinates.
func (e *Engine) ApplyDrag(fromX, fromY, toX, toY, pressure float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyDrag(fromX, fromY, toX, toY, clampPressure(pressure), e.impulseDamping())
}

// Tick advances the simulation by one step.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.step()
}

// Reset returns the surface to rest: heights, velocities and the region tracker are
// cleared. Tilt and tick count are kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.heights.Clear()
	e.velocity.Clear()
	e.tracker = NewTracker(e.size)
}

// SetTilt sets the environmental bias added to every swept cell each tick.
func (e *Engine) SetTilt(x, y float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tiltX, e.tiltY = x, y
}

// Tilt returns the current environmental bias.
func (e *Engine) Tilt() (x, y float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tiltX, e.tiltY
}

// SampleHeight returns the current height at (x, y), or 0 off the grid.
func (e *Engine) SampleHeight(x, y int) float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	h := e.heights.Current()
	if !h.InBounds(x, y) {
		return 0
	}
	return h.At(x, y)
}

// SampleVelocity returns the velocity components at (x, y), or zeros off the grid.
func (e *Engine) SampleVelocity(x, y int) (vx, vy float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.velocity.X.InBounds(x, y) {
		return 0, 0
	}
	return e.velocity.X.At(x, y), e.velocity.Y.At(x, y)
}

// SampleVelocityMagnitude returns |vx|+|vy| at (x, y), or 0 off the grid.
func (e *Engine) SampleVelocityMagnitude(x, y int) float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.velocity.X.InBounds(x, y) {
		return 0
	}
	return e.velocity.Magnitude(x, y)
}

// ForEachCell calls fn for every cell, row by row. fn runs under the engine lock and
// must not call back into the engine.
func (e *Engine) ForEachCell(fn func(x, y int, height, velocityMagnitude float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h := e.heights.Current()
	for y := 0; y < e.size; y++ {
		for x := 0; x < e.size; x++ {
			fn(x, y, h.At(x, y), e.velocity.Magnitude(x, y))
		}
	}
}

// Snapshot copies the current heights into dst, row-major, growing it if needed.
func (e *Engine) Snapshot(dst []float32) []float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyInto(dst, e.heights.Current().Data)
}

// VelocitySnapshot copies both velocity components into dstX and dstY.
func (e *Engine) VelocitySnapshot(dstX, dstY []float32) ([]float32, []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyInto(dstX, e.velocity.X.Data), copyInto(dstY, e.velocity.Y.Data)
}

// Bounds returns the region swept by the most recent tick.
func (e *Engine) Bounds() Region {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Bounds()
}

// Size returns the number of cells per side.
func (e *Engine) Size() int {
	return e.size
}

// Params returns the parameters the engine was built with.
func (e *Engine) Params() Params {
	return e.params
}

// Ticks returns the number of steps taken so far.
func (e *Engine) Ticks() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

func (e *Engine) impulseDamping() float32 {
	return clamp32(e.params.Damping, MinImpulseDamping, MaxImpulseDamping)
}

func clampPressure(p float32) float32 {
	if p != p {
		return MinPressure
	}
	return clamp32(p, MinPressure, MaxPressure)
}

func copyInto(dst, src []float32) []float32 {
	if cap(dst) < len(src) {
		dst = make([]float32, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)
	return dst
}
