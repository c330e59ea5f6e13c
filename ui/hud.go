package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	GridSize     int
	Tick         uint64
	FPS          int32
	Touches      int
	RegionArea   int
	Coupling     string
	Palette      string
	TiltX, TiltY float32
	Paused       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Grid: %dx%d | Coupling: %s | Palette: %s", data.GridSize, data.GridSize, data.Coupling, data.Palette),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Touches: %d | Region: %d cells", data.Tick, data.FPS, data.Touches, data.RegionArea),
		10, 55, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("Tilt: %+.2f, %+.2f", data.TiltX, data.TiltY), 10, 75, 16, rl.LightGray)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatsPanelData holds the latest telemetry window for display.
type StatsPanelData struct {
	TotalAbsHeight float64
	PeakHeight     float64
	VelocityNorm   float64
	Coverage       float32 // Mean swept area over interior area
	AvgTickUS      int64
	StepPct        float64
}

// StatsPanel renders field and perf telemetry in a corner panel.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *StatsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the stats panel and returns the Y below it.
func (p *StatsPanel) Draw(data StatsPanelData) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	inner := p.width - padding*2

	r.DrawPanel(p.x, p.y, p.width, r.Theme.LineHeight*8+padding*2)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, "Surface")
	y = r.DrawLabelValue(x, y, "Sum |h|", fmt.Sprintf("%.2f", data.TotalAbsHeight))
	y = r.DrawLabelValue(x, y, "Peak", fmt.Sprintf("%.3f", data.PeakHeight))
	y = r.DrawLabelValue(x, y, "|v|", fmt.Sprintf("%.2f", data.VelocityNorm))
	y = r.DrawBar(x, y, "Swept", data.Coverage, inner)
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%dus", data.AvgTickUS))
	y = r.DrawLabelValue(x, y, "Step", fmt.Sprintf("%.0f%%", data.StepPct))

	return y + padding
}
