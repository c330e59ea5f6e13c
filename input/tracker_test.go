package input

import (
	"testing"

	"github.com/pthm-cable/ripples/viewport"
)

type impulse struct {
	x, y, p float32
}

type drag struct {
	fromX, fromY, toX, toY, p float32
}

type fakeSink struct {
	impulses []impulse
	drags    []drag
}

func (f *fakeSink) ApplyImpulse(px, py, pressure float32) {
	f.impulses = append(f.impulses, impulse{px, py, pressure})
}

func (f *fakeSink) ApplyDrag(fromX, fromY, toX, toY, pressure float32) {
	f.drags = append(f.drags, drag{fromX, fromY, toX, toY, pressure})
}

func newTestTracker() (*Tracker, *fakeSink) {
	sink := &fakeSink{}
	// 100px screen over a 50-cell grid: two pixels per cell.
	return NewTracker(sink, viewport.New(100, 100, 50), 0.1, 1.0), sink
}

func TestPressure(t *testing.T) {
	tr, _ := newTestTracker()

	tests := []struct {
		name            string
		force, maxForce float32
		want            float32
	}{
		{"no force reporting", 0, 0, 1.0},
		{"half", 3, 6, 0.5},
		{"below minimum", 0.01, 1, 0.1},
		{"above maximum", 8, 4, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Pressure(tt.force, tt.maxForce); got != tt.want {
				t.Errorf("Pressure(%v, %v) = %v, want %v", tt.force, tt.maxForce, got, tt.want)
			}
		})
	}
}

func TestBeginStampsImpulseInGridSpace(t *testing.T) {
	tr, sink := newTestTracker()
	tr.Begin(1, 40, 60, 0, 0)

	if len(sink.impulses) != 1 {
		t.Fatalf("expected 1 impulse, got %d", len(sink.impulses))
	}
	if got := sink.impulses[0]; got != (impulse{20, 30, 1}) {
		t.Errorf("expected impulse at (20,30) p=1, got %+v", got)
	}
	if !tr.Active(1) || tr.Count() != 1 {
		t.Error("expected touch 1 to be active")
	}
}

func TestMoveDragsFromLastPosition(t *testing.T) {
	tr, sink := newTestTracker()
	tr.Begin(7, 10, 10, 1, 2)
	tr.Move(7, 30, 10, 1, 2)
	tr.Move(7, 30, 50, 1, 2)

	want := []drag{
		{5, 5, 15, 5, 0.5},
		{15, 5, 15, 25, 0.5},
	}
	if len(sink.drags) != len(want) {
		t.Fatalf("expected %d drags, got %d", len(want), len(sink.drags))
	}
	for i := range want {
		if sink.drags[i] != want[i] {
			t.Errorf("drag %d: expected %+v, got %+v", i, want[i], sink.drags[i])
		}
	}
}

func TestMoveWithoutBeginOnlyRecords(t *testing.T) {
	tr, sink := newTestTracker()
	tr.Move(3, 20, 20, 0, 0)
	if len(sink.drags) != 0 || len(sink.impulses) != 0 {
		t.Fatal("first move of an unknown touch should not inject anything")
	}
	tr.Move(3, 40, 20, 0, 0)
	if len(sink.drags) != 1 || sink.drags[0].fromX != 10 || sink.drags[0].toX != 20 {
		t.Errorf("expected drag from recorded position, got %+v", sink.drags)
	}
}

func TestEndAndCancelForgetTouches(t *testing.T) {
	tr, sink := newTestTracker()
	tr.Begin(1, 0, 0, 0, 0)
	tr.Begin(2, 10, 10, 0, 0)

	tr.End(1)
	tr.Cancel(2)
	tr.End(99)

	if tr.Count() != 0 || tr.Active(1) || tr.Active(2) {
		t.Errorf("expected no active touches, got %d", tr.Count())
	}

	// A move after End starts over instead of dragging from a stale point.
	tr.Move(1, 50, 50, 0, 0)
	if len(sink.drags) != 0 {
		t.Errorf("expected no drag after end, got %+v", sink.drags)
	}
}

func TestMultipleTouchesAreIndependent(t *testing.T) {
	tr, sink := newTestTracker()
	tr.Begin(1, 0, 0, 0, 0)
	tr.Begin(2, 80, 80, 0, 0)
	tr.Move(2, 90, 80, 0, 0)
	tr.Move(1, 0, 10, 0, 0)

	if len(sink.drags) != 2 {
		t.Fatalf("expected 2 drags, got %d", len(sink.drags))
	}
	if sink.drags[0] != (drag{40, 40, 45, 40, 1}) {
		t.Errorf("touch 2 drag wrong: %+v", sink.drags[0])
	}
	if sink.drags[1] != (drag{0, 0, 0, 5, 1}) {
		t.Errorf("touch 1 drag wrong: %+v", sink.drags[1])
	}
}

func TestAgeAndContacts(t *testing.T) {
	tr, _ := newTestTracker()
	tr.Begin(5, 20, 20, 0, 0)
	tr.Age()
	tr.Age()

	contacts := tr.Contacts(nil)
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	c := contacts[0]
	if c.ID != 5 || c.X != 10 || c.Y != 10 || c.Frames != 2 {
		t.Errorf("unexpected contact %+v", c)
	}

	tr.Begin(5, 20, 20, 0, 0)
	if got := tr.Contacts(nil)[0].Frames; got != 0 {
		t.Errorf("restart should reset age, got %d", got)
	}

	tr.EndAll()
	if tr.Count() != 0 {
		t.Errorf("expected EndAll to clear touches, got %d", tr.Count())
	}
}
