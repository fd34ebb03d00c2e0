// Package records persists completed training sessions.
package records

import (
	"context"
	"errors"
)

var ErrUnknownBackend = errors.New("unknown records backend")

// Record is one finished training session.
type Record struct {
	Timestamp float64 `json:"timestamp"`
	Distance  float64 `json:"distance"`
	Time      float64 `json:"time"`
	Speed     float64 `json:"speed"`
}

// Records is the persisted aggregate: every session plus running totals.
type Records struct {
	Records       []Record `json:"records"`
	TotalDistance float64  `json:"total_distance"`
	TotalTime     float64  `json:"total_time"`
	AvgSpeed      float64  `json:"avg_speed"`
}

// Empty returns the aggregate used when nothing could be loaded.
func Empty() Records {
	return Records{Records: []Record{}}
}

// Append adds a record and updates the totals.
func (r *Records) Append(rec Record) {
	r.Records = append(r.Records, rec)
	r.TotalDistance += rec.Distance
	r.TotalTime += rec.Time
	r.AvgSpeed = avgSpeed(r.TotalDistance, r.TotalTime)
}

// Recompute rebuilds the totals from the record list.
func (r *Records) Recompute() {
	r.TotalDistance, r.TotalTime = 0, 0
	for _, rec := range r.Records {
		r.TotalDistance += rec.Distance
		r.TotalTime += rec.Time
	}
	r.AvgSpeed = avgSpeed(r.TotalDistance, r.TotalTime)
}

func (r Records) Clone() Records {
	out := r
	out.Records = make([]Record, len(r.Records))
	copy(out.Records, r.Records)
	return out
}

func avgSpeed(distance, time float64) float64 {
	if time <= 0 {
		return 0
	}
	return distance / time
}

// Store loads and rewrites the whole aggregate.
type Store interface {
	Load(ctx context.Context) (Records, error)
	Save(ctx context.Context, r Records) error
	Close() error
}
