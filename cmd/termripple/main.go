// Command termripple runs the ripple engine in a terminal. Each character cell
// samples the grid under it; clicking and dragging with the mouse drops ripples.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/ripples/config"
	"github.com/pthm-cable/ripples/input"
	"github.com/pthm-cable/ripples/palette"
	"github.com/pthm-cable/ripples/ripple"
	"github.com/pthm-cable/ripples/tilt"
	"github.com/pthm-cable/ripples/viewport"
)

const mouseID = 1

type viewer struct {
	screen  tcell.Screen
	engine  *ripple.Engine
	touches *input.Tracker
	vp      *viewport.Viewport
	tilt    tilt.Source
	palette palette.Palette

	mousePressure float32
	mouseDown     bool
	paused        bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logPath := flag.String("log", "", "Write JSON logs to this file (empty = discard)")
	size := flag.Int("size", 0, "Grid cells per side (0 = use config)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := run(config.Cfg(), *size); err != nil {
		fmt.Fprintf(os.Stderr, "termripple: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, size int) error {
	engineCfg := cfg.Engine
	if size > 0 {
		engineCfg.MapSize = size
	}
	params, err := ripple.ParamsFromConfig(engineCfg)
	if err != nil {
		return err
	}
	engine, err := ripple.NewEngine(engineCfg.MapSize, params)
	if err != nil {
		return err
	}
	source, err := tilt.FromConfig(cfg.Tilt)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	v := newViewer(screen, engine, source, cfg.Input)
	w, h := screen.Size()
	slog.Info("termripple started", "grid", engine.Size(), "cols", w, "rows", h)

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				slog.Info("termripple stopped", "ticks", engine.Ticks())
				return nil
			}
		case <-ticker.C:
			if !v.paused {
				tx, ty := v.tilt.Next()
				engine.SetTilt(tx, ty)
				engine.Tick()
				v.touches.Age()
			}
			v.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done closes.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func newViewer(screen tcell.Screen, engine *ripple.Engine, source tilt.Source, in config.InputConfig) *viewer {
	w, h := screen.Size()
	vp := viewport.New(float32(w), float32(h), engine.Size())
	return &viewer{
		screen:        screen,
		engine:        engine,
		touches:       input.NewTracker(engine, vp, float32(in.MinPressure), float32(in.MaxPressure)),
		vp:            vp,
		tilt:          source,
		mousePressure: float32(in.MousePressure),
	}
}

// handleEvent reports false when the viewer should exit.
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				v.touches.EndAll()
				v.engine.Reset()
			case 'p':
				v.palette = v.palette.Next()
			case ' ':
				v.paused = !v.paused
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		sx, sy := float32(x)+0.5, float32(y)+0.5
		pressed := ev.Buttons()&tcell.Button1 != 0
		switch {
		case pressed && !v.mouseDown:
			v.touches.Begin(mouseID, sx, sy, v.mousePressure, 1)
		case pressed:
			v.touches.Move(mouseID, sx, sy, v.mousePressure, 1)
		case v.mouseDown:
			v.touches.End(mouseID)
		}
		v.mouseDown = pressed
	case *tcell.EventResize:
		w, h := v.screen.Size()
		v.touches.Resize(float32(w), float32(h))
		v.screen.Sync()
	}
	return true
}

func (v *viewer) draw() {
	w, h := v.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx, gy := v.vp.ScreenToGrid(float32(x)+0.5, float32(y)+0.5)
			cx, cy := int(gx), int(gy)
			c := v.palette.Shade(v.engine.SampleHeight(cx, cy), v.engine.SampleVelocityMagnitude(cx, cy))
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			v.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	status := fmt.Sprintf(" tick %d | %s | space pause, r reset, p palette, esc quit ", v.engine.Ticks(), v.palette)
	if v.paused {
		status = " PAUSED" + status
	}
	label := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range status {
		if i >= w {
			break
		}
		v.screen.SetContent(i, 0, r, nil, label)
	}
	v.screen.Show()
}
