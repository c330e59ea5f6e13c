// Package game wires the ripple engine to input, tilt, rendering and telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/ripples/config"
	"github.com/pthm-cable/ripples/input"
	"github.com/pthm-cable/ripples/renderer"
	"github.com/pthm-cable/ripples/ripple"
	"github.com/pthm-cable/ripples/telemetry"
	"github.com/pthm-cable/ripples/tilt"
	"github.com/pthm-cable/ripples/ui"
	"github.com/pthm-cable/ripples/viewport"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete application state.
type Game struct {
	cfg *config.Config

	engine   *ripple.Engine
	touches  *input.Tracker
	viewport *viewport.Viewport
	tilt     tilt.Source
	keys     *tilt.Keys // non-nil when tilt is steered from the keyboard
	rain     *Rain      // headless input driver

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool
	lastStats     telemetry.WindowStats
	lastPerf      telemetry.PerfStats

	// Snapshot buffers reused across flushes
	heightBuf, vxBuf, vyBuf []float32

	// Rendering (nil in headless mode)
	surface      *renderer.RippleRenderer
	hud          *ui.HUD
	statsPanel   *ui.StatsPanel
	controlPanel *ui.ControlPanel
	controls     ui.ControlState
	pointers     map[uint64]pointer

	headless       bool
	stepsPerUpdate int

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	params, err := ripple.ParamsFromConfig(cfg.Engine)
	if err != nil {
		return nil, err
	}
	engine, err := ripple.NewEngine(cfg.Engine.MapSize, params)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	src, err := tilt.FromConfig(cfg.Tilt)
	if err != nil {
		return nil, err
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	vp := viewport.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Engine.MapSize)
	g := &Game{
		cfg:            cfg,
		engine:         engine,
		viewport:       vp,
		touches:        input.NewTracker(engine, vp, float32(cfg.Input.MinPressure), float32(cfg.Input.MaxPressure)),
		tilt:           src,
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		statsCallback:  opts.StatsCallback,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		pointers:       make(map[uint64]pointer),
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
		controls: ui.ControlState{
			Pressure: float32(cfg.Input.MousePressure),
			TiltX:    float32(cfg.Tilt.X),
			TiltY:    float32(cfg.Tilt.Y),
		},
	}
	if k, ok := src.(*tilt.Keys); ok {
		g.keys = k
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.outputManager = om
	}

	if opts.Headless {
		g.rain = NewRain(rand.New(rand.NewSource(opts.Seed)), cfg.Headless, cfg.Derived.DT32)
	} else {
		g.surface = renderer.NewRippleRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height))
		g.hud = ui.NewHUD()
		g.statsPanel = ui.NewStatsPanel(int32(g.screenWidth)-230, 10, 220)
		g.controlPanel = ui.NewControlPanel(10, 120, 240, float32(cfg.Input.MinPressure), float32(cfg.Input.MaxPressure))
	}

	slog.Info("game created",
		"map_size", cfg.Engine.MapSize,
		"coupling", params.Coupling.String(),
		"tilt", cfg.Tilt.Source,
		"headless", opts.Headless,
	)

	return g, nil
}

// Engine returns the ripple engine driven by the game.
func (g *Game) Engine() *ripple.Engine {
	return g.engine
}

// Tick returns the number of simulation steps taken.
func (g *Game) Tick() uint64 {
	return g.engine.Ticks()
}

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Unload frees GPU resources and closes output files.
func (g *Game) Unload() {
	if g.surface != nil {
		g.surface.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("ripples finished", "ticks", g.Tick(), "output", g.outputManager.Dir())
}
