package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/blas/blas32"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Input events during window
	Impulses int `csv:"impulses"`
	Drags    int `csv:"drags"`
	Touches  int `csv:"touches"` // Live contacts at window end

	// Dirty region over the window
	RegionAreaMean float64 `csv:"region_area_mean"`
	RegionAreaP90  float64 `csv:"region_area_p90"`
	FullSweeps     int     `csv:"full_sweeps"`

	// Field state sampled at window end
	Field FieldMeasure `csv:"-"`

	TotalAbsHeight float64 `csv:"total_abs_height"`
	PeakHeight     float64 `csv:"peak_height"`
	HeightP50      float64 `csv:"height_p50"`
	HeightP90      float64 `csv:"height_p90"`
	VelocityNorm   float64 `csv:"velocity_norm"`
}

// FieldMeasure summarizes one snapshot of the height and velocity fields.
type FieldMeasure struct {
	TotalAbsHeight float64 // Sum of |h| over every cell
	PeakHeight     float64 // Largest |h|
	PeakX, PeakY   int     // Location of PeakHeight
	HeightP50      float64 // Median |h| over nonzero cells
	HeightP90      float64
	VelocityNorm   float64 // Euclidean norm of both velocity components
}

// MeasureField computes a FieldMeasure from row-major snapshots of a size×size
// grid. scratch is reused for the percentile sort and returned grown if needed.
func MeasureField(heights, vx, vy []float32, size int, scratch []float64) (FieldMeasure, []float64) {
	var m FieldMeasure
	n := len(heights)
	if n == 0 {
		return m, scratch
	}

	h := blas32.Vector{N: n, Inc: 1, Data: heights}
	m.TotalAbsHeight = float64(blas32.Asum(h))

	peak := blas32.Iamax(h)
	if peak >= 0 {
		m.PeakHeight = math.Abs(float64(heights[peak]))
		if size > 0 {
			m.PeakX, m.PeakY = peak%size, peak/size
		}
	}

	if len(vx) == n && len(vy) == n {
		nx := float64(blas32.Nrm2(blas32.Vector{N: n, Inc: 1, Data: vx}))
		ny := float64(blas32.Nrm2(blas32.Vector{N: n, Inc: 1, Data: vy}))
		m.VelocityNorm = math.Hypot(nx, ny)
	}

	scratch = scratch[:0]
	for _, v := range heights {
		if v != 0 {
			scratch = append(scratch, math.Abs(float64(v)))
		}
	}
	sort.Float64s(scratch)
	m.HeightP50 = Percentile(scratch, 0.50)
	m.HeightP90 = Percentile(scratch, 0.90)

	return m, scratch
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("impulses", s.Impulses),
		slog.Int("drags", s.Drags),
		slog.Int("touches", s.Touches),
		slog.Float64("region_area_mean", s.RegionAreaMean),
		slog.Float64("region_area_p90", s.RegionAreaP90),
		slog.Int("full_sweeps", s.FullSweeps),
		slog.Float64("total_abs_height", s.TotalAbsHeight),
		slog.Float64("peak_height", s.PeakHeight),
		slog.Int("peak_x", s.Field.PeakX),
		slog.Int("peak_y", s.Field.PeakY),
		slog.Float64("height_p50", s.HeightP50),
		slog.Float64("height_p90", s.HeightP90),
		slog.Float64("velocity_norm", s.VelocityNorm),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"impulses", s.Impulses,
		"drags", s.Drags,
		"region_area_mean", int(s.RegionAreaMean),
		"total_abs_height", s.TotalAbsHeight,
		"peak_height", s.PeakHeight,
	)
}
