package ui

import (
	"fmt"
	"time"

	"github.com/gogpu/gg"

	"github.com/skygrel/panther/internal/screen"
	"github.com/skygrel/panther/internal/track"
)

// ActiveTraining follows a running session. Constructing it starts a new
// activity.
type ActiveTraining struct {
	screen.Base
	settle settle

	tracker *track.Tracker

	tabs      [3]Panel
	tabLabels [3]Label
	pause     Panel

	gpsStatus Label
	gpsAcc    Label
	timeVal   Label
	timeUnits Label
	distVal   Label
	distUnits Label
	speedVal  Label
}

var pauseButton = Rect{Left: 0.15, Bottom: 1.7, Width: 0.25, Height: 0.25}

func NewActiveTraining(d Deps) *ActiveTraining {
	d.Tracker.Reset()
	d.Location.StartUpdates()

	title, label := d.Fonts.Title, d.Fonts.Label
	a := &ActiveTraining{
		Base:    screen.Base{Name: screen.Active},
		settle:  settle{since: d.Clock.Now(), after: longSettle},
		tracker: d.Tracker,
		pause:   Panel{Rect: pauseButton, Color: gg.RGB(0.1, 0.9, 0.3), Radius: 0.125},

		gpsStatus: Label{Text: "GPS status: waiting...", X: 0.03, Y: 1.55, Size: 0.05, Font: label, Color: white},
		gpsAcc:    Label{Text: "ACC: unknown", X: 0.03, Y: 1.45, Size: 0.04, Font: label, Color: white},
		timeVal:   Label{Text: "-", X: 0.1, Y: 1.05, Size: 0.07, Font: title, Color: white},
		timeUnits: Label{Text: "min:sec", X: 0.1, Y: 0.95, Size: 0.045, Font: label, Color: white},
		distVal:   Label{Text: "-", X: 0.6, Y: 1.05, Size: 0.07, Font: title, Color: white},
		distUnits: Label{Text: "m", X: 0.76, Y: 0.95, Size: 0.045, Font: label, Color: white},
		speedVal:  Label{Text: "-", X: 0.55, Y: 0.3, Size: 0.06, Font: title, Color: white},
	}
	heights := [3]float64{1.8, 1.45, 1.1}
	colors := [3]gg.RGBA{gg.RGB(0.05, 0.2, 0.3), gg.RGB(0.15, 0.1, 0.3), gg.RGB(0.3, 0.05, 0.3)}
	names := [3]string{"total", "cur", "avg"}
	for i := range a.tabs {
		a.tabs[i] = Panel{Rect: Rect{Left: 0, Bottom: -0.5, Width: 1, Height: heights[i]}, Color: colors[i], Radius: 0.08}
		a.tabLabels[i] = Label{Text: names[i], X: 0.25 + 0.21*float64(i), Y: 1.21 - 0.35*float64(i), Size: 0.04, Font: label, Color: white}
	}
	return a
}

func (a *ActiveTraining) Press(p screen.Point) screen.Command {
	if pauseButton.Contains(p) {
		return a.pauseTraining()
	}
	return screen.None
}

func (a *ActiveTraining) Back() screen.Command {
	return a.pauseTraining()
}

func (a *ActiveTraining) pauseTraining() screen.Command {
	a.tracker.Pause()
	return screen.Push(screen.Paused)
}

func (a *ActiveTraining) Expanded(now time.Time) bool {
	return a.settle.done(now)
}

// Update refreshes the status and value texts from a tracker snapshot.
func (a *ActiveTraining) Update(time.Time) screen.Command {
	snap := a.tracker.Snapshot()
	if !snap.Online {
		a.gpsStatus.SetText("GPS status: offline")
		return screen.None
	}
	if snap.HasReference {
		if snap.AccuracyGood {
			a.gpsStatus.SetText("GPS status: training online")
			a.distVal.SetText(fmt.Sprintf("%.2f", snap.TotalDistance))
			a.speedVal.SetText(fmt.Sprintf("%.2f m/s", snap.AvgSpeed))
		} else {
			a.gpsStatus.SetText("GPS status: training online (bad acc)")
		}
		a.timeVal.SetText(formatClock(snap.TotalTime))
	} else {
		a.gpsStatus.SetText("GPS status: waiting (bad acc)")
	}
	if snap.HasAccuracy {
		if snap.AccuracyGood {
			a.gpsAcc.SetText(fmt.Sprintf("ACC: +-%.2fm", snap.LastAccuracy))
		} else {
			a.gpsAcc.SetText(fmt.Sprintf("ACC: +-%.2fm (not enough)", snap.LastAccuracy))
		}
	}
	return screen.None
}

func (a *ActiveTraining) Draw(c *gg.Context, _ time.Time) {
	v := newView(c)
	v.background(gg.RGB(0.4, 0.3, 0.5))

	a.pause.Draw(v)
	bar := Panel{Rect: Rect{Left: 0.22, Bottom: 1.76, Width: 0.035, Height: 0.13}, Color: white}
	bar.Draw(v)
	bar.Rect.Left = 0.295
	bar.Draw(v)

	a.gpsStatus.Draw(v)
	a.gpsAcc.Draw(v)
	for i := range a.tabs {
		a.tabs[i].Draw(v)
		a.tabLabels[i].Draw(v)
	}
	a.timeVal.Draw(v)
	a.timeUnits.Draw(v)
	a.distVal.Draw(v)
	a.distUnits.Draw(v)
	a.speedVal.Draw(v)
}
