package track

import (
	"sync"

	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/logging"
)

// Sink is the GPS ingestion boundary: the platform location callback and
// provider notifications land here, from any goroutine.
type Sink interface {
	OnLocation(latitude, longitude, accuracy, timestamp float64) Outcome
	OnProviderEnabled()
	OnProviderDisabled()
}

// LocationSource controls delivery of location updates to a Sink.
type LocationSource interface {
	StartUpdates()
	StopUpdates()
}

type NopSource struct{}

func (NopSource) StartUpdates() {}
func (NopSource) StopUpdates()  {}

// Snapshot is a consistent copy of the tracker state for one UI frame.
type Snapshot struct {
	Online        bool
	HasReference  bool
	AccuracyGood  bool
	LastAccuracy  float64
	HasAccuracy   bool
	TotalDistance float64
	TotalTime     float64
	AvgSpeed      float64
	Paused        bool
	Points        int
	SegmentID     string
}

// Tracker is the single shared GpsData instance, guarded by a mutex.
type Tracker struct {
	mu     sync.Mutex
	data   GpsData
	clock  clock.Clock
	limits Limits
}

var _ Sink = (*Tracker)(nil)

func NewTracker(c clock.Clock, limits Limits) *Tracker {
	return &Tracker{clock: c, limits: limits}
}

func (t *Tracker) OnLocation(latitude, longitude, accuracy, timestamp float64) Outcome {
	m := LocationMetric{
		Latitude:  latitude,
		Longitude: longitude,
		Accuracy:  accuracy,
		Timestamp: timestamp,
	}
	now := t.clock.Now()

	t.mu.Lock()
	outcome := t.data.UpdateLocation(m, now, t.limits)
	segment := t.data.segmentID
	distance, total := t.data.totalDistance, t.data.totalTime
	t.mu.Unlock()

	switch outcome {
	case OutcomeReference:
		logging.L().Info("reference fix recorded, training started", "segment", segment, "lat", latitude, "lon", longitude)
	case OutcomeAccumulated:
		logging.L().Debug("location accumulated", "segment", segment, "distance", distance, "time", total)
	default:
		logging.L().Debug("location excluded", "reason", outcome, "accuracy", accuracy)
	}
	return outcome
}

func (t *Tracker) OnProviderEnabled() {
	logging.L().Info("GPS provider enabled")
	now := t.clock.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.ProviderEnabled(now)
}

func (t *Tracker) OnProviderDisabled() {
	logging.L().Warn("GPS provider disabled")
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.ProviderDisabled()
}

func (t *Tracker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.Pause()
}

func (t *Tracker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.Resume()
}

// Reset starts a brand new activity, dropping the totals too.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data = GpsData{}
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	acc, hasAcc := t.data.LastAccuracy()
	return Snapshot{
		Online:        t.data.Online(),
		HasReference:  t.data.HasReference(),
		AccuracyGood:  t.data.AccuracyGood(),
		LastAccuracy:  acc,
		HasAccuracy:   hasAcc,
		TotalDistance: t.data.TotalDistance(),
		TotalTime:     t.data.TotalTime(),
		AvgSpeed:      t.data.AvgSpeed(),
		Paused:        t.data.Paused(),
		Points:        len(t.data.points),
		SegmentID:     t.data.SegmentID(),
	}
}
