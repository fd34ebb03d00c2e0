package track

import (
	"time"

	"github.com/google/uuid"

	"github.com/skygrel/panther/internal/geo"
)

const (
	DefaultWarmup      = 10 * time.Second
	DefaultMaxAccuracy = 5.5
)

// LocationMetric is one raw GPS sample as delivered by the platform.
type LocationMetric struct {
	Latitude  float64 `json:"latitude" yaml:"lat"`
	Longitude float64 `json:"longitude" yaml:"lon"`
	Accuracy  float64 `json:"accuracy" yaml:"accuracy"`
	Timestamp float64 `json:"timestamp" yaml:"timestamp"`
}

// ProjectedMetric is an accepted sample expressed in meters relative to the
// segment reference.
type ProjectedMetric struct {
	Offset    geo.Offset
	Accuracy  float64
	Timestamp float64
}

// Limits gate which samples contribute to the totals.
type Limits struct {
	Warmup      time.Duration
	MaxAccuracy float64
}

func DefaultLimits() Limits {
	return Limits{Warmup: DefaultWarmup, MaxAccuracy: DefaultMaxAccuracy}
}

// Outcome tells what UpdateLocation did with a sample.
type Outcome int

const (
	OutcomePaused Outcome = iota
	OutcomeWarmingUp
	OutcomeLowAccuracy
	OutcomeReference
	OutcomeAccumulated
)

func (o Outcome) String() string {
	switch o {
	case OutcomePaused:
		return "paused"
	case OutcomeWarmingUp:
		return "warming-up"
	case OutcomeLowAccuracy:
		return "low-accuracy"
	case OutcomeReference:
		return "reference"
	case OutcomeAccumulated:
		return "accumulated"
	default:
		return "unknown"
	}
}

// GpsData accumulates distance and time over one activity. It is not safe
// for concurrent use; Tracker guards it with a mutex.
type GpsData struct {
	availableSince *time.Time
	accuracyGood   bool
	lastAccuracy   *float64
	reference      *LocationMetric
	segmentID      string
	points         []ProjectedMetric
	totalDistance  float64
	totalTime      float64
	paused         bool
}

// UpdateLocation feeds one sample through the warm-up, accuracy and
// reference rules. Samples outside tolerance are dropped silently.
func (d *GpsData) UpdateLocation(m LocationMetric, now time.Time, limits Limits) Outcome {
	if d.paused {
		return OutcomePaused
	}
	if d.availableSince == nil {
		since := now
		d.availableSince = &since
	}
	acc := m.Accuracy
	d.lastAccuracy = &acc

	if now.Sub(*d.availableSince) < limits.Warmup {
		return OutcomeWarmingUp
	}
	if m.Accuracy > limits.MaxAccuracy {
		d.accuracyGood = false
		return OutcomeLowAccuracy
	}
	d.accuracyGood = true

	outcome := OutcomeAccumulated
	if d.reference == nil {
		ref := m
		d.reference = &ref
		d.segmentID = uuid.NewString()
		outcome = OutcomeReference
	}

	p := ProjectedMetric{
		Offset:    geo.Project(m.Latitude, m.Longitude, d.reference.Latitude, d.reference.Longitude),
		Accuracy:  m.Accuracy,
		Timestamp: m.Timestamp,
	}
	if n := len(d.points); n > 0 {
		prev := d.points[n-1]
		d.totalDistance += geo.Distance(prev.Offset, p.Offset)
		// Timestamps are taken as delivered; one older than its
		// predecessor shrinks totalTime.
		d.totalTime += p.Timestamp - prev.Timestamp
	}
	d.points = append(d.points, p)
	return outcome
}

// Pause freezes accumulation and forgets the current segment. Totals are
// kept because they span every segment of the activity.
func (d *GpsData) Pause() {
	d.paused = true
	d.reference = nil
	d.segmentID = ""
	d.points = nil
	d.lastAccuracy = nil
	d.availableSince = nil
}

func (d *GpsData) Resume() {
	d.paused = false
}

func (d *GpsData) ProviderEnabled(now time.Time) {
	d.availableSince = &now
}

func (d *GpsData) ProviderDisabled() {
	d.availableSince = nil
}

func (d *GpsData) AvgSpeed() float64 {
	if d.totalTime <= 0 {
		return 0
	}
	return d.totalDistance / d.totalTime
}

func (d *GpsData) TotalDistance() float64 { return d.totalDistance }
func (d *GpsData) TotalTime() float64     { return d.totalTime }
func (d *GpsData) Online() bool           { return d.availableSince != nil }
func (d *GpsData) HasReference() bool     { return d.reference != nil }
func (d *GpsData) AccuracyGood() bool     { return d.accuracyGood }
func (d *GpsData) Paused() bool           { return d.paused }
func (d *GpsData) SegmentID() string      { return d.segmentID }

func (d *GpsData) LastAccuracy() (float64, bool) {
	if d.lastAccuracy == nil {
		return 0, false
	}
	return *d.lastAccuracy, true
}

func (d *GpsData) Reference() (LocationMetric, bool) {
	if d.reference == nil {
		return LocationMetric{}, false
	}
	return *d.reference, true
}

func (d *GpsData) Points() []ProjectedMetric {
	out := make([]ProjectedMetric, len(d.points))
	copy(out, d.points)
	return out
}
