package ripple

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/ripples/config"
)

// ErrInvalidConfiguration is returned when an engine cannot be built from the
// requested size or parameters.
var ErrInvalidConfiguration = errors.New("ripple: invalid configuration")

// Coupling selects how velocities feed back into heights.
type Coupling int

const (
	// CouplingFlux moves height along the velocity divergence. Stable for every
	// damping in (0,1). The literal h + (vx+vy)*gain update is CouplingDirect.
	CouplingFlux Coupling = iota
	// CouplingDirect adds the cell's own velocity components to its height.
	// It amplifies mid-frequency ripples and diverges over long runs.
	CouplingDirect
)

// String returns the config name of the coupling.
func (c Coupling) String() string {
	switch c {
	case CouplingFlux:
		return "flux"
	case CouplingDirect:
		return "direct"
	default:
		return fmt.Sprintf("Coupling(%d)", int(c))
	}
}

// ParseCoupling maps a config name to a Coupling. Empty selects flux.
func ParseCoupling(name string) (Coupling, error) {
	switch name {
	case "", "flux":
		return CouplingFlux, nil
	case "direct":
		return CouplingDirect, nil
	default:
		return 0, fmt.Errorf("%w: unknown coupling %q", ErrInvalidConfiguration, name)
	}
}

// Impulse and pressure limits applied on the hot path.
const (
	MinPressure       = 0.1
	MaxPressure       = 1.0
	MinImpulseDamping = 0.8
	MaxImpulseDamping = 0.99

	// impactRadiusScale converts pressure into the footprint half-width in cells.
	impactRadiusScale = 3
)

// Params holds the tunable constants of the engine.
type Params struct {
	PressureFactor float32 // Height at the impulse center per unit pressure
	Damping        float32 // Velocity decay per tick, also the impulse falloff damping
	GradientGain   float32 // Velocity change per unit height gradient
	HeightGain     float32 // Height change per unit velocity term
	Coupling       Coupling
	BiasScale      float32 // Height change per tick per unit tilt
}

// DefaultParams returns the reference tuning: 0.7 pressure factor, 0.95 damping.
func DefaultParams() Params {
	return Params{
		PressureFactor: 0.7,
		Damping:        0.95,
		GradientGain:   0.03,
		HeightGain:     0.5,
		Coupling:       CouplingFlux,
		BiasScale:      0.001,
	}
}

// ParamsFromConfig converts the engine section of the config.
func ParamsFromConfig(c config.EngineConfig) (Params, error) {
	coupling, err := ParseCoupling(c.Coupling)
	if err != nil {
		return Params{}, err
	}
	return Params{
		PressureFactor: float32(c.PressureFactor),
		Damping:        float32(c.Damping),
		GradientGain:   float32(c.GradientGain),
		HeightGain:     float32(c.HeightGain),
		Coupling:       coupling,
		BiasScale:      float32(c.BiasScale),
	}, nil
}

func validate(size int, p Params) error {
	if size < 3 {
		return fmt.Errorf("%w: size %d leaves no interior cells (need at least 3)", ErrInvalidConfiguration, size)
	}
	if p.PressureFactor <= 0 {
		return fmt.Errorf("%w: pressure factor %g must be positive", ErrInvalidConfiguration, p.PressureFactor)
	}
	if p.Damping <= 0 || p.Damping >= 1 {
		return fmt.Errorf("%w: damping %g must be in (0,1)", ErrInvalidConfiguration, p.Damping)
	}
	if p.GradientGain < 0 || p.HeightGain < 0 {
		return fmt.Errorf("%w: gains must not be negative", ErrInvalidConfiguration)
	}
	if p.Coupling != CouplingFlux && p.Coupling != CouplingDirect {
		return fmt.Errorf("%w: unknown coupling %d", ErrInvalidConfiguration, int(p.Coupling))
	}
	return nil
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
