package ui

import (
	"fmt"
	"time"

	"github.com/gogpu/gg"

	"github.com/skygrel/panther/internal/records"
	"github.com/skygrel/panther/internal/screen"
)

const recordSpacing = 0.3

// Records lists every finished session; vertical drags scroll the list.
type Records struct {
	screen.Base
	settle settle

	book   *records.Book
	offset float64

	heading Label
	card    Panel
	info    Label
	nav     *navBar
}

func NewRecords(d Deps) *Records {
	f := d.Fonts
	return &Records{
		Base:    screen.Base{Name: screen.Records},
		settle:  settle{since: d.Clock.Now(), after: longSettle},
		book:    d.Book,
		heading: Label{Text: "Records", X: 0.1, Y: 1.8, Size: 0.1, Font: f.Title, Color: white},
		card:    Panel{Rect: Rect{Left: 0.1, Bottom: 1.38, Width: 0.8, Height: 0.2}, Color: gg.RGB(0.5, 0.3, 0.5), Radius: 0.03},
		info:    Label{X: 0.12, Y: 1.5, Size: 0.045, Font: f.Label, Color: white},
		nav:     newNavBar(f, screen.Records),
	}
}

// Offset is the current scroll position in width units.
func (r *Records) Offset() float64 {
	return r.offset
}

func (r *Records) Press(p screen.Point) screen.Command {
	if id, ok := r.nav.target(p); ok && id != screen.Records {
		return screen.Push(id)
	}
	return screen.None
}

func (r *Records) Back() screen.Command {
	return screen.Push(screen.Home)
}

func (r *Records) Expanded(now time.Time) bool {
	return r.settle.done(now)
}

func (r *Records) Scroll(d screen.Point) {
	r.offset += d.Y
}

func describe(i int, rec records.Record) string {
	return fmt.Sprintf("Record %d\n%.2fm in %.2fs at %.2fm/s", i, rec.Distance, rec.Time, rec.Speed)
}

func (r *Records) Draw(c *gg.Context, _ time.Time) {
	v := newView(c)
	v.background(gg.RGB(0.6, 0.8, 0.2))
	r.heading.Draw(v)

	list := r.book.Snapshot().Records
	for i, rec := range list {
		dy := -recordSpacing*float64(i) + r.offset
		card := r.card
		card.Rect = card.Rect.Offset(dy)
		if card.Rect.Bottom > v.top() || card.Rect.Bottom+card.Rect.Height < navHeight {
			continue
		}
		card.Draw(v)
		info := r.info
		info.Text = describe(i, rec)
		info.Y += dy
		info.Draw(v)
	}
	r.nav.Draw(v)
}
