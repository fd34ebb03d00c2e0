package ui

import (
	"context"
	"time"

	"github.com/gogpu/gg"

	"github.com/skygrel/panther/internal/records"
	"github.com/skygrel/panther/internal/screen"
	"github.com/skygrel/panther/internal/track"
)

// Paused overlays the training screen, which stays visible through the
// translucent backdrop. It never reports itself expanded.
type Paused struct {
	screen.Base

	tracker  *track.Tracker
	book     *records.Book
	location track.LocationSource

	tab    Panel
	title  Label
	finish Button
	resume Button
}

var (
	finishButton   = Rect{Left: 0.1, Bottom: 1.1, Width: 0.4, Height: 0.18}
	continueButton = Rect{Left: 0.5, Bottom: 1.1, Width: 0.4, Height: 0.18}
)

func NewPaused(d Deps) *Paused {
	title, label := d.Fonts.Title, d.Fonts.Label
	return &Paused{
		Base:     screen.Base{Name: screen.Paused},
		tracker:  d.Tracker,
		book:     d.Book,
		location: d.Location,
		tab:      Panel{Rect: Rect{Left: 0.1, Bottom: 1.1, Width: 0.8, Height: 0.5}, Color: gg.RGB(0.4, 0.5, 0.9), Radius: 0.04},
		title:    Label{Text: "Paused...", X: 0.15, Y: 1.4, Size: 0.1, Font: title, Color: white},
		finish: Button{
			Panel:   Panel{Rect: finishButton, Color: gg.RGB(0.8, 0.2, 0.2)},
			Caption: Label{Text: "Finish", X: 0.15, Y: 1.16, Size: 0.06, Font: label, Color: white},
		},
		resume: Button{
			Panel:   Panel{Rect: continueButton, Color: gg.RGB(0.2, 0.8, 0.2)},
			Caption: Label{Text: "Continue", X: 0.55, Y: 1.16, Size: 0.06, Font: label, Color: white},
		},
	}
}

func (p *Paused) Press(pos screen.Point) screen.Command {
	switch {
	case p.resume.Hit(pos):
		return p.continueTraining()
	case p.finish.Hit(pos):
		return p.finishTraining()
	}
	return screen.None
}

func (p *Paused) Back() screen.Command {
	return p.continueTraining()
}

func (p *Paused) continueTraining() screen.Command {
	p.tracker.Resume()
	return screen.Pop()
}

// finishTraining records the session once and returns home.
func (p *Paused) finishTraining() screen.Command {
	p.tracker.Pause()
	snap := p.tracker.Snapshot()
	p.book.Add(context.Background(), snap.TotalDistance, snap.TotalTime, snap.AvgSpeed)
	p.location.StopUpdates()
	return screen.Push(screen.Home)
}

func (p *Paused) Draw(c *gg.Context, _ time.Time) {
	v := newView(c)
	v.background(gg.RGBA2(0, 0, 0, 0.5))
	p.tab.Draw(v)
	p.finish.Draw(v)
	p.resume.Draw(v)
	p.title.Draw(v)
}
