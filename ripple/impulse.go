package ripple

import "math"

// impactRadius returns the half-width of the square footprint for a pressure.
func impactRadius(pressure float32) int {
	r := int(math.Ceil(float64(impactRadiusScale * pressure)))
	if r < 1 {
		r = 1
	}
	return r
}

// applyImpulse stamps a square footprint centered on (cx, cy). Height falls off with
// the Manhattan distance from the center; velocity gets a raw outward kick
// proportional to the offset. Border cells are never written.
// Callers hold e.mu.
func (e *Engine) applyImpulse(cx, cy int, pressure, damping float32) {
	e.tracker.MarkActive()

	radius := impactRadius(pressure)
	hMap := e.heights.Current()
	peak := e.params.PressureFactor * pressure * damping
	hi := e.size - 2

	for dy := -radius; dy <= radius; dy++ {
		ny := cy + dy
		if ny < 1 || ny > hi {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			nx := cx + dx
			if nx < 1 || nx > hi {
				continue
			}
			i := hMap.Index(nx, ny)
			hMap.Data[i] += peak / float32(absInt(dx)+absInt(dy)+1)
			e.velocity.X.Data[i] += float32(dx) * pressure
			e.velocity.Y.Data[i] += float32(dy) * pressure

			e.tracker.Expand(nx, ny, radius)
		}
	}
}

// applyDrag spreads impulses along the segment from (fromX, fromY) to (toX, toY) so
// fast pointer motion leaves no gaps: one impulse per cell of the longer axis, both
// endpoints included. Callers hold e.mu.
func (e *Engine) applyDrag(fromX, fromY, toX, toY, pressure, damping float32) {
	dx := toX - fromX
	dy := toY - fromY
	steps := int(max(abs32(dx), abs32(dy)))

	if steps == 0 {
		e.applyImpulse(cellIndex(toX), cellIndex(toY), pressure, damping)
		return
	}

	for i := 0; i <= steps; i++ {
		// Multiply before dividing so integer-aligned segments land on exact cells.
		x := fromX + dx*float32(i)/float32(steps)
		y := fromY + dy*float32(i)/float32(steps)
		e.applyImpulse(cellIndex(x), cellIndex(y), pressure, damping)
	}
}

// cellIndex truncates toward zero, so -0.5 lands on column 0 like 0.5 does.
func cellIndex(v float32) int {
	return int(v)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
