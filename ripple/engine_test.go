package ripple

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func newTestEngine(t *testing.T, size int) *Engine {
	t.Helper()
	e, err := NewEngine(size, DefaultParams())
	if err != nil {
		t.Fatalf("NewEngine(%d): %v", size, err)
	}
	return e
}

func approx(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func sumAbsHeights(e *Engine) float64 {
	var total float64
	for _, v := range e.Snapshot(nil) {
		total += math.Abs(float64(v))
	}
	return total
}

func TestNewEngineValidation(t *testing.T) {
	bad := DefaultParams()
	bad.Damping = 1.0

	unknown := DefaultParams()
	unknown.Coupling = Coupling(7)

	tests := []struct {
		name    string
		size    int
		params  Params
		wantErr bool
	}{
		{"size 1", 1, DefaultParams(), true},
		{"size 2", 2, DefaultParams(), true},
		{"size 3", 3, DefaultParams(), false},
		{"size 128", 128, DefaultParams(), false},
		{"damping 1", 64, bad, true},
		{"unknown coupling", 64, unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.size, tt.params)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
				}
				if e != nil {
					t.Error("expected nil engine on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Size() != tt.size {
				t.Errorf("expected size %d, got %d", tt.size, e.Size())
			}
		})
	}
}

func TestImpulseFootprint(t *testing.T) {
	e := newTestEngine(t, 32)
	e.ApplyImpulse(16, 16, 1.0)

	peak := float32(0.7 * 1.0 * 0.95)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			dx, dy := x-16, y-16
			h := e.SampleHeight(x, y)
			vx, vy := e.SampleVelocity(x, y)
			if absInt(dx) > 3 || absInt(dy) > 3 {
				if h != 0 || vx != 0 || vy != 0 {
					t.Fatalf("cell (%d,%d) outside footprint modified: h=%f v=(%f,%f)", x, y, h, vx, vy)
				}
				continue
			}
			want := peak / float32(absInt(dx)+absInt(dy)+1)
			if !approx(h, want, 1e-6) {
				t.Errorf("cell (%d,%d): expected height %f, got %f", x, y, want, h)
			}
			if vx != float32(dx) || vy != float32(dy) {
				t.Errorf("cell (%d,%d): expected velocity (%d,%d), got (%f,%f)", x, y, dx, dy, vx, vy)
			}
		}
	}
}

func TestImpulseFootprintClippedByBorder(t *testing.T) {
	e := newTestEngine(t, 32)
	e.ApplyImpulse(2, 2, 1.0)

	touched := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if e.SampleHeight(x, y) != 0 {
				touched++
				if x < 1 || y < 1 || x > 5 || y > 5 {
					t.Errorf("unexpected write at (%d,%d)", x, y)
				}
			}
		}
	}
	if touched != 25 {
		t.Errorf("expected 25 cells in the clipped 7x7 footprint, got %d", touched)
	}
}

func TestPressureIsClamped(t *testing.T) {
	hard := newTestEngine(t, 32)
	hard.ApplyImpulse(16, 16, 5.0)
	if got, want := hard.SampleHeight(16, 16), float32(0.7*0.95); !approx(got, want, 1e-6) {
		t.Errorf("pressure above 1 should clamp to 1: expected %f, got %f", want, got)
	}
	if hard.SampleHeight(19, 16) == 0 || hard.SampleHeight(20, 16) != 0 {
		t.Error("expected radius 3 footprint for clamped pressure")
	}

	soft := newTestEngine(t, 32)
	soft.ApplyImpulse(16, 16, 0)
	if got, want := soft.SampleHeight(16, 16), float32(0.7*0.1*0.95); !approx(got, want, 1e-6) {
		t.Errorf("pressure below 0.1 should clamp to 0.1: expected %f, got %f", want, got)
	}
	if soft.SampleHeight(17, 16) == 0 || soft.SampleHeight(18, 16) != 0 {
		t.Error("expected radius 1 footprint for minimum pressure")
	}
}

func TestOutOfGridImpulseIsNoop(t *testing.T) {
	e := newTestEngine(t, 16)
	e.ApplyImpulse(-50, -50, 1.0)
	e.ApplyImpulse(400, 3, 1.0)
	e.Tick()

	if total := sumAbsHeights(e); total != 0 {
		t.Errorf("expected untouched surface, got sum %f", total)
	}
	if got, want := e.Bounds(), Interior(16); got != want {
		t.Errorf("expected idle bounds %+v, got %+v", want, got)
	}
}

func TestImpulseCoordinatesTruncateTowardZero(t *testing.T) {
	neg := newTestEngine(t, 16)
	pos := newTestEngine(t, 16)
	neg.ApplyImpulse(-0.5, 8, 1.0)
	pos.ApplyImpulse(0.5, 8, 1.0)

	a, b := neg.Snapshot(nil), pos.Snapshot(nil)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d: -0.5 gave %f, 0.5 gave %f", i, a[i], b[i])
		}
	}
	// Centered on column 0 with radius 3, the footprint reaches column 3.
	if neg.SampleHeight(3, 8) == 0 {
		t.Error("expected column 3 to be written")
	}
}

func TestDefaultParamsUseFluxCoupling(t *testing.T) {
	p := DefaultParams()
	if p.Coupling != CouplingFlux {
		t.Errorf("expected flux coupling by default, got %s", p.Coupling)
	}
	if c, err := ParseCoupling("direct"); err != nil || c != CouplingDirect {
		t.Errorf("expected direct coupling to stay selectable, got %v, %v", c, err)
	}
}

func TestBoundaryInvariance(t *testing.T) {
	const size = 16
	e := newTestEngine(t, size)

	for i := 0; i < 60; i++ {
		switch i % 4 {
		case 0:
			e.ApplyImpulse(0, 0, 1.0)
		case 1:
			e.ApplyImpulse(size-1, size/2, 1.0)
		case 2:
			e.ApplyDrag(0, 1, size-1, 1, 0.8)
		case 3:
			e.ApplyImpulse(size/2, size-2, 0.5)
		}
		e.Tick()

		for k := 0; k < size; k++ {
			for _, c := range [][2]int{{k, 0}, {k, size - 1}, {0, k}, {size - 1, k}} {
				if h := e.SampleHeight(c[0], c[1]); h != 0 {
					t.Fatalf("tick %d: border cell (%d,%d) has height %f", i, c[0], c[1], h)
				}
				if v := e.SampleVelocityMagnitude(c[0], c[1]); v != 0 {
					t.Fatalf("tick %d: border cell (%d,%d) has velocity %f", i, c[0], c[1], v)
				}
			}
		}
	}
}

func TestDecayAfterSettling(t *testing.T) {
	e := newTestEngine(t, 32)
	e.ApplyImpulse(16, 16, 1.0)

	for i := 0; i < 300; i++ {
		e.Tick()
	}

	prev := sumAbsHeights(e)
	start := prev
	for i := 0; i < 200; i++ {
		e.Tick()
		cur := sumAbsHeights(e)
		if cur > prev*(1+1e-4)+1e-6 {
			t.Fatalf("tick %d: sum |h| grew from %f to %f", 300+i, prev, cur)
		}
		prev = cur
	}
	if prev >= start {
		t.Errorf("expected overall decay, start=%f end=%f", start, prev)
	}
}

func TestIdleTicksUseFullRegion(t *testing.T) {
	e := newTestEngine(t, 20)
	want := Region{MinX: 1, MinY: 1, MaxX: 18, MaxY: 18}

	e.Tick()
	if got := e.Bounds(); got != want {
		t.Errorf("first idle tick: expected %+v, got %+v", want, got)
	}
	e.Tick()
	if got := e.Bounds(); got != want {
		t.Errorf("second idle tick: expected %+v, got %+v", want, got)
	}
}

func TestImpulseRegionGrowsUntilIdle(t *testing.T) {
	e := newTestEngine(t, 20)

	e.ApplyImpulse(10, 10, 0.1)
	e.Tick()
	if got, want := e.Bounds(), (Region{MinX: 8, MinY: 8, MaxX: 12, MaxY: 12}); got != want {
		t.Errorf("after one impulse: expected %+v, got %+v", want, got)
	}

	e.ApplyImpulse(14, 10, 0.1)
	e.Tick()
	if got, want := e.Bounds(), (Region{MinX: 8, MinY: 8, MaxX: 16, MaxY: 12}); got != want {
		t.Errorf("consecutive impulses should union: expected %+v, got %+v", want, got)
	}

	e.Tick()
	if got, want := e.Bounds(), Interior(20); got != want {
		t.Errorf("idle tick should reset to %+v, got %+v", want, got)
	}

	e.ApplyImpulse(1, 1, 1.0)
	e.Tick()
	if got, want := e.Bounds(), (Region{MinX: 1, MinY: 1, MaxX: 7, MaxY: 7}); got != want {
		t.Errorf("region should be clamped into the interior: expected %+v, got %+v", want, got)
	}
}

func TestDragContinuity(t *testing.T) {
	e := newTestEngine(t, 32)
	e.ApplyDrag(5, 5, 15, 5, 0.1)

	// One impulse per integer x: interior samples get their own center plus both
	// neighbours' falloff, endpoints miss one neighbour.
	center := float32(0.7 * 0.1 * 0.95)
	for x := 5; x <= 15; x++ {
		want := center * 2
		if x == 5 || x == 15 {
			want = center * 1.5
		}
		if got := e.SampleHeight(x, 5); !approx(got, want, 1e-6) {
			t.Errorf("x=%d: expected %f, got %f", x, want, got)
		}
	}
}

func TestDragAlongBorderReachesInteriorRow(t *testing.T) {
	e := newTestEngine(t, 32)
	e.ApplyDrag(0, 0, 10, 0, 0.1)

	for x := 0; x <= 10; x++ {
		if h := e.SampleHeight(x, 0); h != 0 {
			t.Errorf("border cell (%d,0) written: %f", x, h)
		}
	}
	for x := 1; x <= 10; x++ {
		if h := e.SampleHeight(x, 1); h == 0 {
			t.Errorf("gap in drag at (%d,1)", x)
		}
	}
}

func TestZeroLengthDragAppliesOneImpulse(t *testing.T) {
	e := newTestEngine(t, 32)
	e.ApplyDrag(7.2, 7.2, 7.6, 7.9, 0.1)

	if got, want := e.SampleHeight(7, 7), float32(0.7*0.1*0.95); !approx(got, want, 1e-6) {
		t.Errorf("expected a single impulse at (7,7): want %f, got %f", want, got)
	}
}

func TestTickShowsNewBufferDirectCoupling(t *testing.T) {
	p := DefaultParams()
	p.Coupling = CouplingDirect
	e, err := NewEngine(24, p)
	if err != nil {
		t.Fatal(err)
	}

	e.ApplyImpulse(12, 12, 1.0)
	before := e.SampleHeight(12, 12)
	e.Tick()

	// Symmetric footprint: both gradients and the center velocity are zero.
	if got := e.SampleHeight(12, 12); got != before {
		t.Errorf("expected center height %f unchanged by the step, got %f", before, got)
	}
}

func TestTickMatchesAnalyticStep(t *testing.T) {
	for _, coupling := range []Coupling{CouplingFlux, CouplingDirect} {
		t.Run(coupling.String(), func(t *testing.T) {
			p := DefaultParams()
			p.Coupling = coupling
			e, err := NewEngine(24, p)
			if err != nil {
				t.Fatal(err)
			}

			e.ApplyImpulse(11, 12, 1.0)
			e.ApplyImpulse(13, 11, 0.4)

			const n = 24
			h := e.Snapshot(nil)
			vx, vy := e.VelocitySnapshot(nil, nil)

			e.Tick()

			for _, c := range [][2]int{{12, 12}, {11, 12}, {14, 11}, {9, 13}} {
				want := referenceStep(h, vx, vy, n, c[0], c[1], p)
				if got := e.SampleHeight(c[0], c[1]); !approx(got, want, 1e-5) {
					t.Errorf("cell %v: expected %f, got %f", c, want, got)
				}
			}
		})
	}
}

// referenceStep recomputes one cell of a step from pre-tick snapshots.
func referenceStep(h, vx, vy []float32, n, x, y int, p Params) float32 {
	vel := func(x, y int) (float32, float32) {
		i := y*n + x
		if x < 1 || y < 1 || x > n-2 || y > n-2 {
			return vx[i], vy[i]
		}
		gx := h[i+1] - h[i-1]
		gy := h[i+n] - h[i-n]
		return (vx[i] - gx*p.GradientGain) * p.Damping, (vy[i] - gy*p.GradientGain) * p.Damping
	}

	i := y*n + x
	if p.Coupling == CouplingDirect {
		cx, cy := vel(x, y)
		return h[i] + (cx+cy)*p.HeightGain
	}
	right, _ := vel(x+1, y)
	left, _ := vel(x-1, y)
	_, down := vel(x, y+1)
	_, up := vel(x, y-1)
	return h[i] - (right-left+down-up)*p.HeightGain
}

func TestSmallRegionDoesNotRevertDistantCells(t *testing.T) {
	e := newTestEngine(t, 32)
	e.ApplyImpulse(20, 20, 1.0)
	for i := 0; i < 5; i++ {
		e.Tick()
	}

	before := e.SampleHeight(22, 20)
	if before == 0 {
		t.Fatal("expected ripple to reach probe cell")
	}

	e.ApplyImpulse(4, 4, 0.1)
	e.Tick()

	if got := e.SampleHeight(22, 20); got != before {
		t.Errorf("cell outside the swept region changed from %f to %f", before, got)
	}
}

func TestTiltBias(t *testing.T) {
	e := newTestEngine(t, 12)
	e.SetTilt(1, 1)
	e.Tick()

	if x, y := e.Tilt(); x != 1 || y != 1 {
		t.Errorf("expected tilt (1,1), got (%f,%f)", x, y)
	}
	want := 2 * DefaultParams().BiasScale
	for y := 1; y < 11; y++ {
		for x := 1; x < 11; x++ {
			if got := e.SampleHeight(x, y); !approx(got, want, 1e-7) {
				t.Fatalf("cell (%d,%d): expected bias %f, got %f", x, y, want, got)
			}
		}
	}
	if e.SampleHeight(0, 5) != 0 {
		t.Error("tilt bias must not reach the border")
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, 16)
	e.ApplyImpulse(8, 8, 1.0)
	e.Tick()
	e.ApplyImpulse(5, 5, 1.0)
	e.Reset()

	if total := sumAbsHeights(e); total != 0 {
		t.Errorf("expected flat surface after reset, got %f", total)
	}
	if v := e.SampleVelocityMagnitude(9, 8); v != 0 {
		t.Errorf("expected zero velocity after reset, got %f", v)
	}
	e.Tick()
	if got, want := e.Bounds(), Interior(16); got != want {
		t.Errorf("expected idle region after reset, got %+v", got)
	}
	if e.Ticks() != 2 {
		t.Errorf("expected tick count to survive reset, got %d", e.Ticks())
	}
}

func TestForEachCellVisitsEveryCell(t *testing.T) {
	e := newTestEngine(t, 10)
	e.ApplyImpulse(5, 5, 0.5)

	visits := 0
	var sum float32
	e.ForEachCell(func(x, y int, height, velocityMagnitude float32) {
		visits++
		sum += height
		if x == 6 && y == 5 && velocityMagnitude != 0.5 {
			t.Errorf("expected |vx|+|vy| = 0.5 at (6,5), got %f", velocityMagnitude)
		}
	})
	if visits != 100 {
		t.Errorf("expected 100 visits, got %d", visits)
	}
	if sum <= 0 {
		t.Errorf("expected positive height sum, got %f", sum)
	}
}

func TestSamplingOffGridReturnsZero(t *testing.T) {
	e := newTestEngine(t, 8)
	e.ApplyImpulse(4, 4, 1.0)

	if e.SampleHeight(-1, 4) != 0 || e.SampleHeight(4, 8) != 0 {
		t.Error("expected zero height off the grid")
	}
	if vx, vy := e.SampleVelocity(8, 8); vx != 0 || vy != 0 {
		t.Error("expected zero velocity off the grid")
	}
	if e.SampleVelocityMagnitude(-3, -3) != 0 {
		t.Error("expected zero velocity magnitude off the grid")
	}
}

func TestConcurrentAccess(t *testing.T) {
	const size = 48
	e := newTestEngine(t, size)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			e.ApplyImpulse(float32(i%size), float32((i*7)%size), 0.6)
			e.ApplyDrag(1, 1, float32(size-2), float32(i%size), 0.3)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			e.Tick()
		}
	}()
	go func() {
		defer wg.Done()
		var buf []float32
		for i := 0; i < 200; i++ {
			buf = e.Snapshot(buf)
			_ = e.SampleHeight(size/2, size/2)
		}
	}()
	wg.Wait()

	if e.Ticks() != 200 {
		t.Errorf("expected 200 ticks, got %d", e.Ticks())
	}
	for k := 0; k < size; k++ {
		if e.SampleHeight(k, 0) != 0 || e.SampleHeight(0, k) != 0 {
			t.Fatalf("border written at k=%d", k)
		}
	}
}

func BenchmarkTickFull(b *testing.B) {
	e, _ := NewEngine(325, DefaultParams())
	e.ApplyImpulse(160, 160, 1.0)
	e.Tick()

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		e.Tick()
	}
}

func BenchmarkTickWithImpulse(b *testing.B) {
	e, _ := NewEngine(325, DefaultParams())

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		e.ApplyImpulse(125, 125, 0.5)
		e.Tick()
	}
}
