package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ripples/input"
)

// mouseID keeps the mouse apart from platform touch IDs, which are small integers.
const mouseID = uint64(1) << 32

// pointer is one contact in screen coordinates.
type pointer struct {
	X, Y float32
}

// pointerEvents counts the transitions applied by syncPointers.
type pointerEvents struct {
	Began, Moved, Ended int
}

// syncPointers diffs this frame's contacts against the previous frame's and feeds
// the transitions to the tracker. Contacts that did not move produce no event, so a
// held finger does not keep stamping impulses.
func syncPointers(tr *input.Tracker, prev, cur map[uint64]pointer, pressure float32) pointerEvents {
	var ev pointerEvents
	for id, p := range cur {
		old, ok := prev[id]
		switch {
		case !ok:
			tr.Begin(id, p.X, p.Y, pressure, 1)
			ev.Began++
		case old != p:
			tr.Move(id, p.X, p.Y, pressure, 1)
			ev.Moved++
		}
	}
	for id := range prev {
		if _, ok := cur[id]; !ok {
			tr.End(id)
			ev.Ended++
		}
	}
	return ev
}

// readPointers collects the contacts held down this frame. Touch points take
// priority; the mouse is used only when the platform reports no touches. New
// contacts that start over the control panel are ignored.
func (g *Game) readPointers() map[uint64]pointer {
	cur := make(map[uint64]pointer, len(g.pointers)+1)
	add := func(id uint64, v rl.Vector2) {
		if _, held := g.pointers[id]; !held && g.controlPanel.Contains(v.X, v.Y) {
			return
		}
		cur[id] = pointer{X: v.X, Y: v.Y}
	}

	if n := rl.GetTouchPointCount(); n > 0 {
		for i := int32(0); i < n; i++ {
			add(uint64(rl.GetTouchPointId(i)), rl.GetTouchPosition(i))
		}
		return cur
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		add(mouseID, rl.GetMousePosition())
	}
	return cur
}

// pointerInput applies this frame's pointer changes to the surface.
func (g *Game) pointerInput() {
	cur := g.readPointers()
	ev := syncPointers(g.touches, g.pointers, cur, g.controls.Pressure)
	g.pointers = cur
	g.touches.Age()

	for i := 0; i < ev.Began; i++ {
		g.collector.RecordImpulse()
	}
	for i := 0; i < ev.Moved; i++ {
		g.collector.RecordDrag()
	}
}
