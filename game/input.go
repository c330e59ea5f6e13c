package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.controls.Paused = !g.controls.Paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.surface.SetPalette(g.surface.Palette().Next())
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controlPanel.Toggle()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if g.keys != nil {
		g.handleTiltKeys()
	}
}

// handleTiltKeys steers keyboard tilt with the arrow keys. 0 levels the surface.
func (g *Game) handleTiltKeys() {
	var dx, dy int
	if rl.IsKeyPressed(rl.KeyLeft) {
		dx--
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		dx++
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		dy--
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		dy++
	}
	if dx != 0 || dy != 0 {
		g.keys.Nudge(dx, dy)
	}
	if rl.IsKeyPressed(rl.KeyZero) {
		g.keys.Level()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.touches.Resize(w, h)
	g.surface.Resize(w, h)
	g.statsPanel.SetPosition(int32(w)-230, 10)
}

// reset calms the surface and forgets every contact.
func (g *Game) reset() {
	g.engine.Reset()
	g.touches.EndAll()
	clear(g.pointers)
}

// Update handles one frame of input and advances the simulation.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if g.controls.Paused {
		g.pointerInput()
		g.uploadSurface()
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		var inject, post func()
		if i == 0 {
			inject = g.pointerInput
		}
		if i == g.stepsPerUpdate-1 {
			post = g.uploadSurface
		}
		g.step(inject, post)
	}
}

// uploadSurface shades the current heights into the surface texture.
func (g *Game) uploadSurface() {
	g.surface.Update(g.engine)
}
