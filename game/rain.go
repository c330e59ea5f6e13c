package game

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/ripples/config"
	"github.com/pthm-cable/ripples/input"
)

// Drop is one scripted input event in grid coordinates.
type Drop struct {
	X, Y     float32
	ToX, ToY float32 // drag end, when Drag is set
	Pressure float32
	Drag     bool
}

// Apply injects the drop into sink.
func (d Drop) Apply(sink input.ImpulseSink) {
	if d.Drag {
		sink.ApplyDrag(d.X, d.Y, d.ToX, d.ToY, d.Pressure)
		return
	}
	sink.ApplyImpulse(d.X, d.Y, d.Pressure)
}

// Rain produces random drops and strokes at a steady average rate, standing in for
// touch input when there is no window.
type Rain struct {
	rng          *rand.Rand
	perTick      float64
	dragChance   float64
	maxDragCells float64
	accum        float64
}

// NewRain creates a rain driver producing cfg.DropsPerSecond drops at dt seconds
// per tick.
func NewRain(rng *rand.Rand, cfg config.HeadlessConfig, dt float32) *Rain {
	return &Rain{
		rng:          rng,
		perTick:      cfg.DropsPerSecond * float64(dt),
		dragChance:   cfg.DragChance,
		maxDragCells: cfg.MaxDragCells,
	}
}

// Next returns the drops due this tick for a size×size grid. Drops land anywhere
// on the grid, border included, so the engine's edge handling is exercised too.
func (r *Rain) Next(size int) []Drop {
	r.accum += r.perTick
	n := int(r.accum)
	if n == 0 {
		return nil
	}
	r.accum -= float64(n)

	drops := make([]Drop, 0, n)
	for i := 0; i < n; i++ {
		d := Drop{
			X:        r.rng.Float32() * float32(size),
			Y:        r.rng.Float32() * float32(size),
			Pressure: 0.1 + r.rng.Float32()*0.9,
		}
		if r.rng.Float64() < r.dragChance {
			angle := r.rng.Float64() * 2 * math.Pi
			length := r.rng.Float64() * r.maxDragCells
			d.Drag = true
			d.ToX = d.X + float32(math.Cos(angle)*length)
			d.ToY = d.Y + float32(math.Sin(angle)*length)
		}
		drops = append(drops, d)
	}
	return drops
}
