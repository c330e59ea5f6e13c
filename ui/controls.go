package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlState is the user-adjustable state the control panel edits in place.
type ControlState struct {
	Pressure     float32 // Pressure used for mouse input
	TiltX, TiltY float32
	Paused       bool
}

// ControlActions reports one-shot requests made through the panel this frame.
type ControlActions struct {
	Reset        bool
	CyclePalette bool
	TiltChanged  bool
}

// ControlPanel renders raygui sliders and buttons for live tuning.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	minPressure, maxPressure float32
}

// NewControlPanel creates a hidden control panel. Pressure sliders are limited to
// [minPressure, maxPressure].
func NewControlPanel(x, y, width int32, minPressure, maxPressure float32) *ControlPanel {
	return &ControlPanel{
		renderer:    NewRenderer(),
		x:           x,
		y:           y,
		width:       width,
		minPressure: minPressure,
		maxPressure: maxPressure,
	}
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool {
	return c.visible
}

// Contains reports whether a screen point is over the visible panel. The host
// uses it to keep slider drags from stirring the water.
func (c *ControlPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x < float32(c.x+c.width) &&
		y >= float32(c.y) && y < float32(c.y+c.height())
}

func (c *ControlPanel) height() int32 {
	return 230
}

// Draw renders the panel and applies slider changes to state.
func (c *ControlPanel) Draw(state *ControlState) ControlActions {
	var actions ControlActions
	if !c.visible {
		return actions
	}

	r := c.renderer
	padding := float32(r.Theme.Padding)
	r.DrawPanel(c.x, c.y, c.width, c.height())

	x := float32(c.x) + padding
	y := float32(c.y) + padding
	sliderW := float32(c.width) - padding*2 - 50

	rl.DrawText("Controls", int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += 22

	state.Pressure = c.slider(x, &y, sliderW, "Pressure", state.Pressure, c.minPressure, c.maxPressure)

	tiltX := c.slider(x, &y, sliderW, "Tilt X", state.TiltX, -1, 1)
	tiltY := c.slider(x, &y, sliderW, "Tilt Y", state.TiltY, -1, 1)
	if tiltX != state.TiltX || tiltY != state.TiltY {
		state.TiltX, state.TiltY = tiltX, tiltY
		actions.TiltChanged = true
	}

	btnW := (float32(c.width) - padding*4) / 3
	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: btnW, Height: 26}, pauseText) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + btnW + padding, Y: y, Width: btnW, Height: 26}, "Reset") {
		actions.Reset = true
	}
	if gui.Button(rl.Rectangle{X: x + (btnW+padding)*2, Y: y, Width: btnW, Height: 26}, "Palette") {
		actions.CyclePalette = true
	}

	return actions
}

// slider draws a labeled slider bar and advances y past it.
func (c *ControlPanel) slider(x float32, y *float32, width float32, label string, value, lo, hi float32) float32 {
	r := c.renderer
	rl.DrawText(label, int32(x), int32(*y), r.Theme.FontSize, r.Theme.LabelColor)
	*y += 16
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: width, Height: 18},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf("%+.2f", v), int32(x+width+6), int32(*y+2), r.Theme.FontSize, r.Theme.ValueColor)
	*y += 30
	return v
}
