package input

import (
	"testing"
)

type recorder struct {
	forward bool
	empty   bool
	starts  int
	scrolls [][2]float64
	presses [][2]float64
}

func (r *recorder) Addressable() bool { return !r.empty }

func (r *recorder) StartScroll(x, y float64) bool {
	r.starts++
	return r.forward
}

func (r *recorder) Scroll(dx, dy float64) { r.scrolls = append(r.scrolls, [2]float64{dx, dy}) }
func (r *recorder) Press(x, y float64)    { r.presses = append(r.presses, [2]float64{x, y}) }

func TestTapWithoutForwarding(t *testing.T) {
	tr := NewTracker(DefaultThreshold)
	r := &recorder{}
	tr.OnTouch(r, 1, 100, 100, Started)
	for _, p := range [][2]float64{{110, 100}, {110, 115}, {100, 120}} {
		tr.OnTouch(r, 1, p[0], p[1], Moved)
	}
	tr.OnTouch(r, 1, 100, 120, Ended)

	if len(r.presses) != 1 {
		t.Fatalf("presses = %d, want 1", len(r.presses))
	}
	if r.presses[0] != [2]float64{100, 120} {
		t.Errorf("press at %v, want (100, 120)", r.presses[0])
	}
	if len(r.scrolls) != 0 {
		t.Errorf("scrolls = %d, want 0", len(r.scrolls))
	}
	if tr.Active() != 0 {
		t.Errorf("active = %d, want 0", tr.Active())
	}
}

func TestDragPastThresholdIsNotAPress(t *testing.T) {
	tests := []struct {
		name    string
		forward bool
		scrolls int
	}{
		{"forwarding", true, 4},
		{"not forwarding", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(DefaultThreshold)
			r := &recorder{forward: tt.forward}
			tr.OnTouch(r, 7, 0, 0, Started)
			tr.OnTouch(r, 7, 20, 0, Moved)
			tr.OnTouch(r, 7, 20, 20, Moved)
			tr.OnTouch(r, 7, 40, 20, Moved)
			tr.OnTouch(r, 7, 40, 10, Moved)
			tr.OnTouch(r, 7, 40, 10, Ended)

			if len(r.presses) != 0 {
				t.Errorf("presses = %d, want 0", len(r.presses))
			}
			if len(r.scrolls) != tt.scrolls {
				t.Fatalf("scrolls = %d, want %d", len(r.scrolls), tt.scrolls)
			}
			if tt.forward && r.scrolls[3] != [2]float64{0, -10} {
				t.Errorf("last delta = %v, want (0, -10)", r.scrolls[3])
			}
		})
	}
}

func TestForwardedDeltasBeforeThreshold(t *testing.T) {
	tr := NewTracker(DefaultThreshold)
	r := &recorder{forward: true}
	tr.OnTouch(r, 1, 10, 10, Started)
	tr.OnTouch(r, 1, 13, 6, Moved)
	tr.OnTouch(r, 1, 13, 6, Ended)

	if len(r.scrolls) != 1 || r.scrolls[0] != [2]float64{3, -4} {
		t.Fatalf("scrolls = %v, want [(3, -4)]", r.scrolls)
	}
	if len(r.presses) != 1 {
		t.Errorf("presses = %d, want 1", len(r.presses))
	}
}

func TestThresholdIsStrict(t *testing.T) {
	tr := NewTracker(DefaultThreshold)
	r := &recorder{}
	tr.OnTouch(r, 1, 0, 0, Started)
	tr.OnTouch(r, 1, 25, 25, Moved)
	tr.OnTouch(r, 1, 25, 25, Ended)
	if len(r.presses) != 1 {
		t.Fatalf("distance of exactly 50 should still press, presses = %d", len(r.presses))
	}
}

func TestCancelledAndUnknownTouches(t *testing.T) {
	tr := NewTracker(DefaultThreshold)
	r := &recorder{}
	tr.OnTouch(r, 3, 5, 5, Moved)
	tr.OnTouch(r, 3, 5, 5, Ended)
	if len(r.presses) != 0 {
		t.Fatalf("press issued for unknown touch")
	}

	tr.OnTouch(r, 4, 5, 5, Started)
	tr.OnTouch(r, 4, 5, 5, Cancelled)
	tr.OnTouch(r, 4, 5, 5, Ended)
	if len(r.presses) != 0 {
		t.Fatalf("press issued after cancel")
	}
	if tr.Active() != 0 {
		t.Errorf("active = %d, want 0", tr.Active())
	}
}

func TestTouchesTrackedIndependently(t *testing.T) {
	tr := NewTracker(DefaultThreshold)
	r := &recorder{}
	tr.OnTouch(r, 1, 0, 0, Started)
	tr.OnTouch(r, 2, 0, 0, Started)
	tr.OnTouch(r, 1, 100, 0, Moved)
	tr.OnTouch(r, 2, 5, 0, Moved)
	if tr.Active() != 2 {
		t.Fatalf("active = %d, want 2", tr.Active())
	}
	tr.OnTouch(r, 1, 100, 0, Ended)
	tr.OnTouch(r, 2, 5, 0, Ended)
	if len(r.presses) != 1 || r.presses[0] != [2]float64{5, 0} {
		t.Fatalf("presses = %v, want only touch 2", r.presses)
	}
}

func TestEmptyReceiverDropsTouch(t *testing.T) {
	tr := NewTracker(DefaultThreshold)
	r := &recorder{empty: true}
	tr.OnTouch(r, 1, 0, 0, Started)
	tr.OnTouch(r, 1, 0, 0, Ended)
	if r.starts != 0 || len(r.presses) != 0 {
		t.Fatalf("starts = %d presses = %d, want none", r.starts, len(r.presses))
	}
	if tr.Active() != 0 {
		t.Errorf("active = %d, want 0", tr.Active())
	}
}

func TestNewTrackerDefaultsThreshold(t *testing.T) {
	if got := NewTracker(0).threshold; got != DefaultThreshold {
		t.Fatalf("threshold = %v, want %v", got, DefaultThreshold)
	}
}
