package ui

import (
	"time"

	"github.com/gogpu/gg"

	"github.com/skygrel/panther/internal/screen"
)

type Home struct {
	screen.Base
	settle settle

	background gg.RGBA
	title      Label
	hint       Label
}

func NewHome(d Deps) *Home {
	return &Home{
		Base:       screen.Base{Name: screen.Home},
		settle:     settle{since: d.Clock.Now(), after: shortSettle},
		background: gg.RGB(0.4, 0.5, 0.9),
		title:      Label{Text: "Panther\ntracker", X: 0.1, Y: 1.7, Size: 0.18, Font: d.Fonts.Title, Color: white},
		hint:       Label{Text: "tap anywhere to begin", X: 0.1, Y: 0.3, Size: 0.05, Font: d.Fonts.Label, Color: gg.RGBA2(1, 1, 1, 0.7)},
	}
}

func (h *Home) Press(screen.Point) screen.Command {
	return screen.Push(screen.Stats)
}

func (h *Home) Back() screen.Command {
	return screen.Exit()
}

func (h *Home) Expanded(now time.Time) bool {
	return h.settle.done(now)
}

func (h *Home) Draw(c *gg.Context, _ time.Time) {
	v := newView(c)
	v.background(h.background)
	h.title.Draw(v)
	h.hint.Draw(v)
}
