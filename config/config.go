// Package config provides configuration loading and access for the ripple simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Engine    EngineConfig    `yaml:"engine"`
	Input     InputConfig     `yaml:"input"`
	Tilt      TiltConfig      `yaml:"tilt"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// EngineConfig holds wave engine parameters.
type EngineConfig struct {
	MapSize        int     `yaml:"map_size"`        // Cells per side (square grid)
	PressureFactor float64 `yaml:"pressure_factor"` // Height added at the impulse center per unit pressure
	Damping        float64 `yaml:"damping"`         // Velocity decay per tick
	GradientGain   float64 `yaml:"gradient_gain"`   // Velocity change per unit height gradient
	HeightGain     float64 `yaml:"height_gain"`     // Height change per unit velocity term
	Coupling       string  `yaml:"coupling"`        // "flux" (stable) or "direct"
	BiasScale      float64 `yaml:"bias_scale"`      // Tilt contribution per tick
}

// InputConfig holds touch and pointer conversion parameters.
type InputConfig struct {
	MinPressure   float64 `yaml:"min_pressure"`
	MaxPressure   float64 `yaml:"max_pressure"`
	MousePressure float64 `yaml:"mouse_pressure"` // Pressure for devices without force sensing
}

// TiltConfig selects the environmental bias source.
type TiltConfig struct {
	Source         string  `yaml:"source"` // none, static, noise, keys
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	NoiseSpeed     float64 `yaml:"noise_speed"`     // Noise time advance per tick
	NoiseAmplitude float64 `yaml:"noise_amplitude"` // Peak tilt magnitude per axis
	KeyStep        float64 `yaml:"key_step"`        // Tilt change per key press
	Seed           int64   `yaml:"seed"`
}

// HeadlessConfig holds the scripted rain driver used without a window.
type HeadlessConfig struct {
	DropsPerSecond float64 `yaml:"drops_per_second"`
	DragChance     float64 `yaml:"drag_chance"` // Probability that a drop is a drag stroke
	MaxDragCells   float64 `yaml:"max_drag_cells"`
}

// TelemetryConfig holds stats and perf collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per field stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks per perf rolling window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Seconds per tick at the target frame rate
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	CellW32   float32 // Screen pixels per grid cell, horizontally
	CellH32   float32 // Screen pixels per grid cell, vertically
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks ranges that would otherwise surface as engine construction errors
// far from the offending file.
func (c *Config) Validate() error {
	if c.Engine.MapSize < 3 {
		return fmt.Errorf("engine.map_size must be at least 3, got %d", c.Engine.MapSize)
	}
	if c.Engine.Damping <= 0 || c.Engine.Damping >= 1 {
		return fmt.Errorf("engine.damping must be in (0,1), got %g", c.Engine.Damping)
	}
	switch c.Engine.Coupling {
	case "", "flux", "direct":
	default:
		return fmt.Errorf("engine.coupling must be flux or direct, got %q", c.Engine.Coupling)
	}
	if c.Input.MinPressure > c.Input.MaxPressure {
		return fmt.Errorf("input.min_pressure %g exceeds max_pressure %g", c.Input.MinPressure, c.Input.MaxPressure)
	}
	switch c.Tilt.Source {
	case "", "none", "static", "noise", "keys":
	default:
		return fmt.Errorf("tilt.source must be none, static, noise or keys, got %q", c.Tilt.Source)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = 1 / float32(c.Screen.TargetFPS)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.CellW32 = c.Derived.ScreenW32 / float32(c.Engine.MapSize)
	c.Derived.CellH32 = c.Derived.ScreenH32 / float32(c.Engine.MapSize)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
