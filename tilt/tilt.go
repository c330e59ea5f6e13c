// Package tilt provides environmental bias sources for the ripple engine.
//
// A source is polled once per tick and its value handed to Engine.SetTilt.
package tilt

import (
	"fmt"

	"github.com/aquilax/go-perlin"

	"github.com/pthm-cable/ripples/config"
)

// Source yields the tilt for the next tick.
type Source interface {
	Next() (x, y float32)
}

// None always reports a level surface.
type None struct{}

// Next implements Source.
func (None) Next() (x, y float32) { return 0, 0 }

// Static reports a fixed tilt.
type Static struct {
	X, Y float32
}

// Next implements Source.
func (s Static) Next() (x, y float32) { return s.X, s.Y }

// Perlin generator settings. Matches the library's usual smooth defaults.
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
)

// NoiseSource drifts the tilt along two decorrelated Perlin noise tracks.
type NoiseSource struct {
	nx, ny    *perlin.Perlin
	t         float64
	speed     float64
	amplitude float64
}

// NewNoiseSource creates a drifting source. Each axis uses its own seed so the two
// components do not move in lockstep.
func NewNoiseSource(seed int64, speed, amplitude float64) *NoiseSource {
	return &NoiseSource{
		nx:        perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed),
		ny:        perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed+1),
		speed:     speed,
		amplitude: amplitude,
	}
}

// Next implements Source. Output is clamped to [-amplitude, amplitude].
func (n *NoiseSource) Next() (x, y float32) {
	n.t += n.speed
	return n.sample(n.nx), n.sample(n.ny)
}

func (n *NoiseSource) sample(p *perlin.Perlin) float32 {
	v := p.Noise1D(n.t) * n.amplitude
	v = max(-n.amplitude, min(n.amplitude, v))
	return float32(v)
}

// Keys is a tilt steered by the user. The host calls Nudge from its key handler.
type Keys struct {
	X, Y float32
	Step float32
}

// Nudge moves the tilt by dx, dy steps, keeping each axis within [-1, 1].
func (k *Keys) Nudge(dx, dy int) {
	k.X = clampUnit(k.X + float32(dx)*k.Step)
	k.Y = clampUnit(k.Y + float32(dy)*k.Step)
}

// Level resets the tilt to zero.
func (k *Keys) Level() {
	k.X, k.Y = 0, 0
}

// Next implements Source.
func (k *Keys) Next() (x, y float32) { return k.X, k.Y }

func clampUnit(v float32) float32 {
	return max(-1, min(1, v))
}

// FromConfig builds the source named by cfg.Source.
func FromConfig(cfg config.TiltConfig) (Source, error) {
	switch cfg.Source {
	case "", "none":
		return None{}, nil
	case "static":
		return Static{X: float32(cfg.X), Y: float32(cfg.Y)}, nil
	case "noise":
		return NewNoiseSource(cfg.Seed, cfg.NoiseSpeed, cfg.NoiseAmplitude), nil
	case "keys":
		return &Keys{X: float32(cfg.X), Y: float32(cfg.Y), Step: float32(cfg.KeyStep)}, nil
	default:
		return nil, fmt.Errorf("unknown tilt source %q", cfg.Source)
	}
}
