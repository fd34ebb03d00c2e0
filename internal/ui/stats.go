package ui

import (
	"fmt"
	"time"

	"github.com/gogpu/gg"

	"github.com/skygrel/panther/internal/records"
	"github.com/skygrel/panther/internal/screen"
)

// Stats shows the totals over every recorded session and starts a new one.
type Stats struct {
	screen.Base
	settle settle

	book  *records.Book
	color gg.RGBA

	heading  Label
	distance Label
	elapsed  Label
	speed    Label
	count    Label
	start    Button
	nav      *navBar
}

func NewStats(d Deps) *Stats {
	f := d.Fonts
	return &Stats{
		Base:     screen.Base{Name: screen.Stats},
		settle:   settle{since: d.Clock.Now(), after: shortSettle},
		book:     d.Book,
		color:    gg.RGB(0.5, 0.2, 0.9),
		heading:  Label{Text: "Your stats", X: 0.1, Y: 1.75, Size: 0.1, Font: f.Title, Color: white},
		distance: Label{X: 0.1, Y: 1.5, Size: 0.06, Font: f.Label, Color: white},
		elapsed:  Label{X: 0.1, Y: 1.4, Size: 0.06, Font: f.Label, Color: white},
		speed:    Label{X: 0.1, Y: 1.3, Size: 0.06, Font: f.Label, Color: white},
		count:    Label{X: 0.1, Y: 1.2, Size: 0.06, Font: f.Label, Color: white},
		start: Button{
			Panel:   Panel{Rect: Rect{Left: 0.25, Bottom: 0.6, Width: 0.5, Height: 0.2}, Color: gg.RGB(0.1, 0.8, 0.3), Radius: 0.05},
			Caption: Label{Text: "Start", X: 0.38, Y: 0.67, Size: 0.08, Font: f.Title, Color: white},
		},
		nav: newNavBar(f, screen.Stats),
	}
}

// Color is the current background colour.
func (s *Stats) Color() gg.RGBA {
	return s.color
}

func (s *Stats) Press(p screen.Point) screen.Command {
	if id, ok := s.nav.target(p); ok {
		if id == screen.Stats {
			return screen.None
		}
		return screen.Push(id)
	}
	if s.start.Hit(p) {
		return screen.Push(screen.Active)
	}
	return screen.None
}

func (s *Stats) Back() screen.Command {
	return screen.Push(screen.Home)
}

func (s *Stats) Expanded(now time.Time) bool {
	return s.settle.done(now)
}

// Scroll tints the background: horizontal drags move blue, vertical drags
// move red.
func (s *Stats) Scroll(d screen.Point) {
	s.color.B = clamp01(s.color.B - d.X/2)
	s.color.R = clamp01(s.color.R - d.Y/2)
}

func (s *Stats) Update(time.Time) screen.Command {
	r := s.book.Snapshot()
	s.distance.SetText(fmt.Sprintf("distance: %.2f m", r.TotalDistance))
	s.elapsed.SetText("time: " + formatClock(r.TotalTime))
	s.speed.SetText(fmt.Sprintf("avg speed: %.2f m/s", r.AvgSpeed))
	s.count.SetText(fmt.Sprintf("sessions: %d", len(r.Records)))
	return screen.None
}

func (s *Stats) Draw(c *gg.Context, _ time.Time) {
	v := newView(c)
	v.background(s.color)
	s.heading.Draw(v)
	s.distance.Draw(v)
	s.elapsed.Draw(v)
	s.speed.Draw(v)
	s.count.Draw(v)
	s.start.Draw(v)
	s.nav.Draw(v)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// formatClock renders seconds as mm:ss.
func formatClock(seconds float64) string {
	secs := int64(seconds)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
