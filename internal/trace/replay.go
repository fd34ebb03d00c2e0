package trace

import (
	"context"
	"sync"
	"time"

	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/logging"
	"github.com/skygrel/panther/internal/track"
)

// Result summarises a replay.
type Result struct {
	Samples   int
	Providers int
	Outcomes  map[track.Outcome]int
}

// Replay feeds every event to sink on virtual time: clk is set to the
// trace start plus the event offset before each delivery, so warm-up
// windows follow the trace rather than the wall clock.
func Replay(ctx context.Context, t *Trace, sink track.Sink, clk *clock.Manual) (Result, error) {
	res := Result{Outcomes: make(map[track.Outcome]int)}
	start := t.Start()
	for _, e := range t.Events {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		clk.Set(start.Add(e.At))
		outcome, isSample := deliver(sink, e)
		if isSample {
			res.Samples++
			res.Outcomes[outcome]++
		} else {
			res.Providers++
		}
	}
	return res, nil
}

// Player delivers a trace in real time from its own goroutine. It is a
// track.LocationSource: StartUpdates plays the trace from the beginning and
// StopUpdates halts it.
type Player struct {
	trace *Trace
	sink  track.Sink
	speed float64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

var _ track.LocationSource = (*Player)(nil)

// NewPlayer plays t into sink. speed scales the gaps between events; values
// of zero or less mean real time.
func NewPlayer(t *Trace, sink track.Sink, speed float64) *Player {
	if speed <= 0 {
		speed = 1
	}
	return &Player{trace: t, sink: sink, speed: speed}
}

func (p *Player) StartUpdates() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.cancel, p.done = cancel, done
	logging.L().Info("trace playback started", "trace", p.trace.Name, "events", len(p.trace.Events))
	go func() {
		defer close(done)
		p.play(ctx)
	}()
}

func (p *Player) StopUpdates() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	logging.L().Info("trace playback stopped", "trace", p.trace.Name)
}

// Wait blocks until the current playback finishes or is stopped.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (p *Player) play(ctx context.Context) {
	begin := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C
	for _, e := range p.trace.Events {
		due := begin.Add(time.Duration(float64(e.At) / p.speed))
		if wait := time.Until(due); wait > 0 {
			timer.Reset(wait)
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return
		}
		deliver(p.sink, e)
	}
	logging.L().Info("trace playback finished", "trace", p.trace.Name)
}
