// Package input classifies raw touch events into taps and drags.
package input

import (
	"math"

	"github.com/skygrel/panther/internal/logging"
)

// DefaultThreshold is the accumulated |dx|+|dy| in pixels after which a
// touch stops being a tap.
const DefaultThreshold = 50.0

type Phase int

const (
	Started Phase = iota
	Moved
	Ended
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Started:
		return "started"
	case Moved:
		return "moved"
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Receiver is the addressed input target, normally the screen stack.
// Positions and deltas are surface pixels with y down.
type Receiver interface {
	Addressable() bool
	StartScroll(x, y float64) bool
	Scroll(dx, dy float64)
	Press(x, y float64)
}

type touchState struct {
	x, y    float64
	dist    float64
	moving  bool
	forward bool
}

// Tracker keeps one state per active touch id.
type Tracker struct {
	threshold float64
	touches   map[uint64]*touchState
}

func NewTracker(threshold float64) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{threshold: threshold, touches: make(map[uint64]*touchState)}
}

// Active is the number of touches in progress.
func (t *Tracker) Active() int {
	return len(t.touches)
}

func (t *Tracker) OnTouch(r Receiver, id uint64, x, y float64, phase Phase) {
	switch phase {
	case Started:
		t.start(r, id, x, y)
	case Moved:
		t.move(r, id, x, y)
	case Ended:
		t.end(r, id, x, y)
	case Cancelled:
		delete(t.touches, id)
	}
}

func (t *Tracker) start(r Receiver, id uint64, x, y float64) {
	if !r.Addressable() {
		logging.L().Warn("touch dropped, no screen to address", "id", id)
		return
	}
	t.touches[id] = &touchState{x: x, y: y, forward: r.StartScroll(x, y)}
}

func (t *Tracker) move(r Receiver, id uint64, x, y float64) {
	ts, ok := t.touches[id]
	if !ok {
		return
	}
	dx, dy := x-ts.x, y-ts.y
	if ts.forward {
		if r.Addressable() {
			r.Scroll(dx, dy)
		} else {
			logging.L().Warn("scroll dropped, no screen to address", "id", id)
		}
	}
	ts.x, ts.y = x, y
	if ts.moving {
		return
	}
	ts.dist += math.Abs(dx) + math.Abs(dy)
	if ts.dist > t.threshold {
		ts.moving = true
	}
}

func (t *Tracker) end(r Receiver, id uint64, x, y float64) {
	ts, ok := t.touches[id]
	if !ok {
		return
	}
	delete(t.touches, id)
	if ts.moving {
		return
	}
	if !r.Addressable() {
		logging.L().Warn("press dropped, no screen to address", "id", id)
		return
	}
	r.Press(x, y)
}
