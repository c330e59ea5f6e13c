package ripple

// step advances the simulation by one tick over the region resolved by the tracker.
//
// The sweep runs in two passes. The first accelerates each cell's velocity down the
// central-difference height gradient and applies damping. The second writes the new
// heights into the back buffer, reading only the current buffer and the freshly
// updated velocities, so the result does not depend on sweep order. The border ring
// is never written and stays at zero. Callers hold e.mu.
func (e *Engine) step() {
	r := e.tracker.Resolve()
	e.syncStale(r)

	if !r.Empty() {
		e.updateVelocities(r)
		e.updateHeights(r)
	}

	e.heights.Swap()
	e.tracker.Commit(r)
	e.ticks++
}

// syncStale copies cells swept by the previous step but outside r from the current
// buffer into the back buffer. Outside the swept region both buffers then agree, so
// the swap cannot bring back a height from two ticks ago.
func (e *Engine) syncStale(r Region) {
	prev := e.tracker.Bounds()
	if prev.Empty() || r.ContainsRegion(prev) {
		return
	}
	cur := e.heights.Current()
	back := e.heights.Back()
	if r.Empty() {
		back.CopyRect(cur, prev)
		return
	}
	for y := prev.MinY; y <= prev.MaxY; y++ {
		for x := prev.MinX; x <= prev.MaxX; x++ {
			if r.Contains(x, y) {
				continue
			}
			i := cur.Index(x, y)
			back.Data[i] = cur.Data[i]
		}
	}
}

func (e *Engine) updateVelocities(r Region) {
	h := e.heights.Current()
	vx := e.velocity.X
	vy := e.velocity.Y
	gain := e.params.GradientGain
	damping := e.params.Damping
	n := e.size

	for y := r.MinY; y <= r.MaxY; y++ {
		row := y * n
		for x := r.MinX; x <= r.MaxX; x++ {
			i := row + x
			gradX := h.Data[i+1] - h.Data[i-1]
			gradY := h.Data[i+n] - h.Data[i-n]

			vx.Data[i] += -gradX * gain
			vy.Data[i] += -gradY * gain
			vx.Data[i] *= damping
			vy.Data[i] *= damping
		}
	}
}

func (e *Engine) updateHeights(r Region) {
	h := e.heights.Current()
	back := e.heights.Back()
	vx := e.velocity.X
	vy := e.velocity.Y
	gain := e.params.HeightGain
	bias := (e.tiltX + e.tiltY) * e.params.BiasScale
	n := e.size

	switch e.params.Coupling {
	case CouplingDirect:
		for y := r.MinY; y <= r.MaxY; y++ {
			row := y * n
			for x := r.MinX; x <= r.MaxX; x++ {
				i := row + x
				back.Data[i] = h.Data[i] + (vx.Data[i]+vy.Data[i])*gain + bias
			}
		}
	default:
		for y := r.MinY; y <= r.MaxY; y++ {
			row := y * n
			for x := r.MinX; x <= r.MaxX; x++ {
				i := row + x
				div := vx.Data[i+1] - vx.Data[i-1] + vy.Data[i+n] - vy.Data[i-n]
				back.Data[i] = h.Data[i] - div*gain + bias
			}
		}
	}
}
