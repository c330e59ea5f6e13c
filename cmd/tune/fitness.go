package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/ripples/config"
	"github.com/pthm-cable/ripples/ripple"
	"github.com/pthm-cable/ripples/telemetry"
)

// Target describes the ripple behavior the tuner steers toward.
type Target struct {
	SettleTicks    int     // Tick at which the surface should be nearly calm
	SettleFraction float64 // Remaining sum |h|, relative to the peak, at SettleTicks
	ReachCells     int     // Distance a ripple should travel from the drop
	ReachHeight    float64 // Minimum |h| the ripple must show at ReachCells
}

// blowupFactor marks a run as unstable once sum |h| exceeds the initial value
// by this much. The impulse velocity kick lifts a healthy ripple to a few dozen
// times its initial stamp.
const blowupFactor = 1000

// unstablePenalty is the fitness of a diverging run.
const unstablePenalty = 1e6

// FitnessEvaluator runs headless engines and scores coefficient sets.
type FitnessEvaluator struct {
	params *ParamVector
	base   config.EngineConfig
	target Target
	seeds  []int64

	mu          sync.Mutex
	lastDecay   float64 // decay error from the most recent Evaluate call
	lastReached float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base config.EngineConfig, target Target, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{params: params, base: base, target: target, seeds: seeds}
}

// LastScores returns the decay error and reach ratio of the most recent evaluation.
func (fe *FitnessEvaluator) LastScores() (decay, reached float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastDecay, fe.lastReached
}

type seedResult struct {
	fitness float64
	decay   float64
	reached float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.base
	fe.params.ApplyToConfig(&cfg, x)

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSeed(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total, decay, reached float64
	for _, r := range results {
		total += r.fitness
		decay += r.decay
		reached += r.reached
	}
	n := float64(len(results))

	fe.mu.Lock()
	fe.lastDecay = decay / n
	fe.lastReached = reached / n
	fe.mu.Unlock()

	return total / n
}

// runSeed drops one impulse at a seeded position and scores the response.
func (fe *FitnessEvaluator) runSeed(cfg config.EngineConfig, seed int64) seedResult {
	params, err := ripple.ParamsFromConfig(cfg)
	if err != nil {
		return seedResult{fitness: unstablePenalty}
	}
	engine, err := ripple.NewEngine(cfg.MapSize, params)
	if err != nil {
		return seedResult{fitness: unstablePenalty}
	}

	rng := rand.New(rand.NewSource(seed))
	size := cfg.MapSize
	margin := fe.target.ReachCells + 2
	span := size - 2*margin
	if span < 1 {
		span = 1
	}
	cx := margin + rng.Intn(span)
	cy := margin + rng.Intn(span)
	pressure := float32(0.5 + rng.Float64()*0.5)

	engine.ApplyImpulse(float32(cx), float32(cy), pressure)

	var heights []float32
	var scratch []float64
	var m telemetry.FieldMeasure

	heights = engine.Snapshot(heights)
	m, scratch = telemetry.MeasureField(heights, nil, nil, size, scratch)
	initial := m.TotalAbsHeight
	peak := initial
	if initial == 0 {
		return seedResult{fitness: unstablePenalty}
	}

	var reachMax float64
	for tick := 0; tick < fe.target.SettleTicks; tick++ {
		engine.Tick()
		reachMax = max(reachMax, math.Abs(float64(engine.SampleHeight(cx+fe.target.ReachCells, cy))))

		heights = engine.Snapshot(heights)
		m, scratch = telemetry.MeasureField(heights, nil, nil, size, scratch)
		if math.IsNaN(m.TotalAbsHeight) || math.IsInf(m.TotalAbsHeight, 0) || m.TotalAbsHeight > blowupFactor*initial {
			return seedResult{fitness: unstablePenalty}
		}
		peak = max(peak, m.TotalAbsHeight)
	}

	remaining := max(m.TotalAbsHeight/peak, 1e-12)
	decayErr := math.Log(remaining) - math.Log(fe.target.SettleFraction)
	decayErr *= decayErr

	reached := min(1, reachMax/fe.target.ReachHeight)
	fitness := decayErr + 4*(1-reached)

	return seedResult{fitness: fitness, decay: decayErr, reached: reached}
}
