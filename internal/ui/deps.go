// Package ui holds the concrete screens of the tracker and the widgets they
// are drawn with.
package ui

import (
	"time"

	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/records"
	"github.com/skygrel/panther/internal/screen"
	"github.com/skygrel/panther/internal/track"
)

// Deps are the services the screens share. They are built once at startup.
type Deps struct {
	Tracker  *track.Tracker
	Book     *records.Book
	Location track.LocationSource
	Clock    clock.Clock
	Fonts    *Fonts
}

const (
	shortSettle = 500 * time.Millisecond
	longSettle  = time.Second
)

// settle tracks how long a screen has been alive.
type settle struct {
	since time.Time
	after time.Duration
}

func (s settle) done(now time.Time) bool {
	return now.Sub(s.since) > s.after
}

// Registry binds every screen ID to a constructor over d.
func Registry(d Deps) screen.Registry {
	if d.Location == nil {
		d.Location = track.NopSource{}
	}
	if d.Clock == nil {
		d.Clock = clock.SystemClock{}
	}
	return screen.Registry{
		screen.Home:    func() (screen.Screen, error) { return NewHome(d), nil },
		screen.Stats:   func() (screen.Screen, error) { return NewStats(d), nil },
		screen.Records: func() (screen.Screen, error) { return NewRecords(d), nil },
		screen.Active:  func() (screen.Screen, error) { return NewActiveTraining(d), nil },
		screen.Paused:  func() (screen.Screen, error) { return NewPaused(d), nil },
	}
}
