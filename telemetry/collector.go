package telemetry

import (
	"math"
	"sort"
)

// Collector accumulates input and region events within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks uint64
	dt                  float32

	windowStartTick uint64

	impulses   int
	drags      int
	fullSweeps int
	areas      []float64

	scratch []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec is the length of each window in simulation seconds and dt the
// seconds per tick.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := uint64(1)
	if dt > 0 {
		// Rounded so 1/60 s ticks give whole windows despite float32 dt.
		if n := math.Round(windowDurationSec / float64(dt)); n > 1 {
			ticksPerWindow = uint64(n)
		}
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordImpulse records a single-point impulse.
func (c *Collector) RecordImpulse() {
	c.impulses++
}

// RecordDrag records a drag stroke.
func (c *Collector) RecordDrag() {
	c.drags++
}

// RecordTick records the area swept by one tick. full marks an idle tick that
// swept the whole interior.
func (c *Collector) RecordTick(area int, full bool) {
	c.areas = append(c.areas, float64(area))
	if full {
		c.fullSweeps++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// heights, vx and vy are row-major snapshots of a size×size grid; touches is the
// number of live contacts.
func (c *Collector) Flush(currentTick uint64, heights, vx, vy []float32, size, touches int) WindowStats {
	var field FieldMeasure
	field, c.scratch = MeasureField(heights, vx, vy, size, c.scratch)

	var areaMean float64
	for _, a := range c.areas {
		areaMean += a
	}
	if len(c.areas) > 0 {
		areaMean /= float64(len(c.areas))
	}
	sort.Float64s(c.areas)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Impulses: c.impulses,
		Drags:    c.drags,
		Touches:  touches,

		RegionAreaMean: areaMean,
		RegionAreaP90:  Percentile(c.areas, 0.90),
		FullSweeps:     c.fullSweeps,

		Field:          field,
		TotalAbsHeight: field.TotalAbsHeight,
		PeakHeight:     field.PeakHeight,
		HeightP50:      field.HeightP50,
		HeightP90:      field.HeightP90,
		VelocityNorm:   field.VelocityNorm,
	}

	c.windowStartTick = currentTick
	c.impulses = 0
	c.drags = 0
	c.fullSweeps = 0
	c.areas = c.areas[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() uint64 {
	return c.windowDurationTicks
}
