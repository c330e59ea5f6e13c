package ripple

import "testing"

func TestTrackerIdleResolvesInterior(t *testing.T) {
	tr := NewTracker(10)
	if got, want := tr.Resolve(), Interior(10); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if _, ok := tr.Pending(); ok {
		t.Error("idle resolve should leave no pending box")
	}
}

func TestTrackerExpandAndClamp(t *testing.T) {
	tr := NewTracker(10)
	tr.MarkActive()
	tr.Expand(2, 5, 3)
	tr.Expand(6, 7, 1)

	pending, ok := tr.Pending()
	if !ok {
		t.Fatal("expected pending box")
	}
	if want := (Region{MinX: -1, MinY: 2, MaxX: 7, MaxY: 8}); pending != want {
		t.Errorf("expected raw union %+v, got %+v", want, pending)
	}
	if got, want := tr.Resolve(), (Region{MinX: 1, MinY: 2, MaxX: 7, MaxY: 8}); got != want {
		t.Errorf("expected clamped %+v, got %+v", want, got)
	}
}

func TestTrackerActiveWithoutWritesStaysFull(t *testing.T) {
	tr := NewTracker(10)
	tr.MarkActive()
	if got, want := tr.Resolve(), Interior(10); got != want {
		t.Errorf("activity without writes should sweep the interior, got %+v", got)
	}
}

func TestTrackerCommitClearsActivity(t *testing.T) {
	tr := NewTracker(10)
	tr.MarkActive()
	tr.Expand(5, 5, 1)
	r := tr.Resolve()
	tr.Commit(r)

	if tr.Active() {
		t.Error("commit should clear the activity flag")
	}
	if tr.Bounds() != r {
		t.Errorf("expected bounds %+v, got %+v", r, tr.Bounds())
	}
	if _, ok := tr.Pending(); !ok {
		t.Error("commit must not shrink or drop the pending box")
	}
}

func TestRegionHelpers(t *testing.T) {
	r := Region{MinX: 2, MinY: 3, MaxX: 4, MaxY: 6}
	if r.Area() != 12 {
		t.Errorf("expected area 12, got %d", r.Area())
	}
	if !r.Contains(2, 6) || r.Contains(5, 5) {
		t.Error("Contains is not inclusive on both ends")
	}
	if !r.ContainsRegion(Region{MinX: 3, MinY: 3, MaxX: 4, MaxY: 4}) {
		t.Error("expected inner region to be contained")
	}
	if r.ContainsRegion(Interior(10)) {
		t.Error("interior is larger than r")
	}
	empty := Region{MinX: 1, MaxX: 0}
	if !empty.Empty() || empty.Area() != 0 {
		t.Error("expected empty region with zero area")
	}
}

func TestHeightFieldSwapIsRoleFlip(t *testing.T) {
	h := NewHeightField(4)
	cur := h.Current()
	back := h.Back()
	back.Set(1, 1, 3)

	h.Swap()
	if h.Current().At(1, 1) != 3 {
		t.Error("back buffer should become current after swap")
	}
	if &h.Back().Data[0] != &cur.Data[0] {
		t.Error("swap must reuse the previous current buffer, not copy")
	}
}

func TestGridCopyRect(t *testing.T) {
	src := NewGrid(5)
	dst := NewGrid(5)
	for i := range src.Data {
		src.Data[i] = float32(i)
	}
	dst.CopyRect(src, Region{MinX: 1, MinY: 1, MaxX: 2, MaxY: 3})

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			inside := x >= 1 && x <= 2 && y >= 1 && y <= 3
			got := dst.At(x, y)
			if inside && got != src.At(x, y) {
				t.Errorf("(%d,%d) not copied", x, y)
			}
			if !inside && got != 0 {
				t.Errorf("(%d,%d) copied outside rect", x, y)
			}
		}
	}
}
