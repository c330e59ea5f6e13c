package ripple

// Region is an inclusive bounding box of grid cells.
type Region struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Interior returns the region every step may write: the grid minus its one-cell border.
func Interior(size int) Region {
	return Region{MinX: 1, MinY: 1, MaxX: size - 2, MaxY: size - 2}
}

// Empty reports whether the region contains no cells.
func (r Region) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Area returns the number of cells in the region.
func (r Region) Area() int {
	if r.Empty() {
		return 0
	}
	return (r.MaxX - r.MinX + 1) * (r.MaxY - r.MinY + 1)
}

// Contains reports whether (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// ContainsRegion reports whether o lies entirely inside r.
func (r Region) ContainsRegion(o Region) bool {
	if o.Empty() {
		return true
	}
	return o.MinX >= r.MinX && o.MaxX <= r.MaxX && o.MinY >= r.MinY && o.MaxY <= r.MaxY
}

// Clamp limits every bound to [lo, hi].
func (r Region) Clamp(lo, hi int) Region {
	return Region{
		MinX: clampInt(r.MinX, lo, hi),
		MinY: clampInt(r.MinY, lo, hi),
		MaxX: clampInt(r.MaxX, lo, hi),
		MaxY: clampInt(r.MaxY, lo, hi),
	}
}

// Tracker accumulates the bounding box of cells disturbed by impulses and resolves
// the region the next step sweeps.
//
// Between ticks the pending box only grows. A tick with activity sweeps the pending
// box and keeps it; a tick without activity sweeps the whole interior and starts the
// accumulation over.
type Tracker struct {
	size       int
	pending    Region
	hasPending bool
	active     bool
	last       Region
}

// NewTracker creates an idle tracker for a size×size grid.
func NewTracker(size int) *Tracker {
	return &Tracker{size: size, last: Interior(size)}
}

// MarkActive records that an impulse was applied since the previous tick.
func (t *Tracker) MarkActive() {
	t.active = true
}

// Expand grows the pending box to cover (x±radius, y±radius).
func (t *Tracker) Expand(x, y, radius int) {
	box := Region{MinX: x - radius, MinY: y - radius, MaxX: x + radius, MaxY: y + radius}
	if !t.hasPending {
		t.pending = box
		t.hasPending = true
		return
	}
	t.pending.MinX = min(t.pending.MinX, box.MinX)
	t.pending.MinY = min(t.pending.MinY, box.MinY)
	t.pending.MaxX = max(t.pending.MaxX, box.MaxX)
	t.pending.MaxY = max(t.pending.MaxY, box.MaxY)
}

// Active reports whether an impulse was applied since the previous tick.
func (t *Tracker) Active() bool {
	return t.active
}

// Pending returns the accumulated box, unclamped, and whether any impulse wrote a cell.
func (t *Tracker) Pending() (Region, bool) {
	return t.pending, t.hasPending
}

// Resolve returns the region the coming step sweeps, clamped to the interior.
// Idle ticks reset the accumulation to the full grid.
func (t *Tracker) Resolve() Region {
	if !t.active || !t.hasPending {
		t.Reset()
		return Region{MinX: 0, MinY: 0, MaxX: t.size, MaxY: t.size}.Clamp(1, t.size-2)
	}
	return t.pending.Clamp(1, t.size-2)
}

// Commit records the region a step swept and clears the activity flag.
func (t *Tracker) Commit(r Region) {
	t.last = r
	t.active = false
}

// Bounds returns the region swept by the most recent step.
func (t *Tracker) Bounds() Region {
	return t.last
}

// Reset drops the accumulated box. The next resolve without activity covers the
// whole interior.
func (t *Tracker) Reset() {
	t.pending = Region{}
	t.hasPending = false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
