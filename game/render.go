package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ripples/telemetry"
	"github.com/pthm-cable/ripples/ui"
)

const controlsLegend = "[Space] pause  [R] reset  [P] palette  [Tab] panel  [,/.] speed  [arrows] tilt"

// Draw renders the surface and overlays.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.surface.Draw()

	size := g.engine.Size()
	tx, ty := g.engine.Tilt()
	g.hud.Draw(ui.HUDData{
		Title:      "Ripples",
		GridSize:   size,
		Tick:       g.engine.Ticks(),
		FPS:        rl.GetFPS(),
		Touches:    g.touches.Count(),
		RegionArea: g.engine.Bounds().Area(),
		Coupling:   g.engine.Params().Coupling.String(),
		Palette:    g.surface.Palette().String(),
		TiltX:      tx,
		TiltY:      ty,
		Paused:     g.controls.Paused,
	})

	var coverage float32
	if interior := (size - 2) * (size - 2); interior > 0 {
		coverage = float32(g.lastStats.RegionAreaMean) / float32(interior)
	}
	g.statsPanel.Draw(ui.StatsPanelData{
		TotalAbsHeight: g.lastStats.TotalAbsHeight,
		PeakHeight:     g.lastStats.PeakHeight,
		VelocityNorm:   g.lastStats.VelocityNorm,
		Coverage:       coverage,
		AvgTickUS:      g.lastPerf.AvgTickDuration.Microseconds(),
		StepPct:        g.lastPerf.PhasePct[telemetry.PhaseStep],
	})

	g.handleControls(g.controlPanel.Draw(&g.controls))
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	rl.EndDrawing()
}

// handleControls applies the one-shot requests made through the control panel.
func (g *Game) handleControls(a ui.ControlActions) {
	if a.Reset {
		g.reset()
	}
	if a.CyclePalette {
		g.surface.SetPalette(g.surface.Palette().Next())
	}
	if a.TiltChanged {
		g.overrideTilt(g.controls.TiltX, g.controls.TiltY)
	}
}
