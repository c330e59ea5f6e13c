package game

import (
	"testing"

	"github.com/pthm-cable/ripples/input"
	"github.com/pthm-cable/ripples/viewport"
)

func TestSyncPointers(t *testing.T) {
	sink := &countingSink{}
	tr := input.NewTracker(sink, viewport.New(100, 100, 100), 0.1, 1)

	prev := map[uint64]pointer{}
	cur := map[uint64]pointer{1: {10, 10}, mouseID: {50, 50}}
	ev := syncPointers(tr, prev, cur, 0.5)
	if ev.Began != 2 || sink.impulses != 2 {
		t.Fatalf("expected 2 begins, got %+v (sink %+v)", ev, sink)
	}

	prev, cur = cur, map[uint64]pointer{1: {20, 10}, mouseID: {50, 50}}
	ev = syncPointers(tr, prev, cur, 0.5)
	if ev.Moved != 1 || ev.Began != 0 || sink.drags != 1 {
		t.Errorf("only the moving contact should drag, got %+v (sink %+v)", ev, sink)
	}

	prev, cur = cur, map[uint64]pointer{mouseID: {50, 50}}
	ev = syncPointers(tr, prev, cur, 0.5)
	if ev.Ended != 1 || tr.Active(1) || !tr.Active(mouseID) {
		t.Errorf("expected contact 1 to end, got %+v", ev)
	}
}
