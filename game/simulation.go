package game

import (
	"github.com/pthm-cable/ripples/telemetry"
	"github.com/pthm-cable/ripples/tilt"
)

// step advances the surface by one tick: inject input, poll tilt, sweep, record
// telemetry, then run post. inject and post may be nil.
func (g *Game) step(inject, post func()) {
	g.perfCollector.StartTick()

	if inject != nil {
		g.perfCollector.StartPhase(telemetry.PhaseInput)
		inject()
	}

	g.perfCollector.StartPhase(telemetry.PhaseTilt)
	x, y := g.tilt.Next()
	g.controls.TiltX, g.controls.TiltY = x, y
	g.engine.SetTilt(x, y)

	g.perfCollector.StartPhase(telemetry.PhaseStep)
	g.engine.Tick()

	g.perfCollector.StartPhase(telemetry.PhaseStats)
	size := g.engine.Size()
	area := g.engine.Bounds().Area()
	g.collector.RecordTick(area, area == (size-2)*(size-2))
	g.flushTelemetry()

	if post != nil {
		g.perfCollector.StartPhase(telemetry.PhaseTexture)
		post()
	}

	g.perfCollector.EndTick()
}

// overrideTilt pins the tilt to a panel-chosen value. Keyboard tilt keeps its
// source so arrow keys continue from the new value.
func (g *Game) overrideTilt(x, y float32) {
	if g.keys != nil {
		g.keys.X, g.keys.Y = x, y
		return
	}
	g.tilt = tilt.Static{X: x, Y: y}
}

// rainInput injects the next batch of scripted drops.
func (g *Game) rainInput() {
	for _, d := range g.rain.Next(g.engine.Size()) {
		d.Apply(g.engine)
		if d.Drag {
			g.collector.RecordDrag()
		} else {
			g.collector.RecordImpulse()
		}
	}
}

// UpdateHeadless runs stepsPerUpdate ticks with scripted rain as input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.rainInput, nil)
	}
}
