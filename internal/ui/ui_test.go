package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/gg"

	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/geo"
	"github.com/skygrel/panther/internal/records"
	"github.com/skygrel/panther/internal/screen"
	"github.com/skygrel/panther/internal/track"
)

type countingSource struct {
	starts, stops int
}

func (s *countingSource) StartUpdates() { s.starts++ }
func (s *countingSource) StopUpdates()  { s.stops++ }

type fixture struct {
	deps   Deps
	clock  *clock.Manual
	source *countingSource
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fonts, err := DefaultFonts()
	if err != nil {
		t.Fatalf("DefaultFonts: %v", err)
	}
	clk := clock.NewManual(time.Unix(1714550400, 0))
	src := &countingSource{}
	store := records.NewJSONStore(filepath.Join(t.TempDir(), records.JSONFileName))
	return &fixture{
		clock:  clk,
		source: src,
		deps: Deps{
			Tracker:  track.NewTracker(clk, track.DefaultLimits()),
			Book:     records.LoadBook(context.Background(), store, clk),
			Location: src,
			Clock:    clk,
			Fonts:    fonts,
		},
	}
}

// walk feeds a reference fix and a second fix 10 m north, 5 s later.
func (f *fixture) walk() {
	tr := f.deps.Tracker
	tr.OnProviderEnabled()
	f.clock.Advance(11 * time.Second)
	tr.OnLocation(52.0, 13.0, 3, 100)
	tr.OnLocation(52.0+10/geo.MetersPerDegree, 13.0, 3, 105)
}

func TestRegistryBuildsEveryScreen(t *testing.T) {
	f := newFixture(t)
	reg := Registry(f.deps)
	for _, id := range []screen.ID{screen.Home, screen.Stats, screen.Records, screen.Active, screen.Paused} {
		factory, ok := reg[id]
		if !ok {
			t.Fatalf("no factory for %s", id)
		}
		s, err := factory()
		if err != nil || s == nil {
			t.Fatalf("factory(%s) = %v, %v", id, s, err)
		}
	}
}

func TestHomeNavigation(t *testing.T) {
	f := newFixture(t)
	h := NewHome(f.deps)
	if got := h.Press(screen.Point{X: 0.5, Y: 1}); got != screen.Push(screen.Stats) {
		t.Errorf("Press = %v, want push(stats)", got)
	}
	if got := h.Back(); got != screen.Exit() {
		t.Errorf("Back = %v, want exit", got)
	}
	now := f.clock.Now()
	if h.Expanded(now.Add(500 * time.Millisecond)) {
		t.Error("expanded at exactly 0.5s")
	}
	if !h.Expanded(now.Add(501 * time.Millisecond)) {
		t.Error("not expanded after 0.5s")
	}
}

func TestStatsPress(t *testing.T) {
	f := newFixture(t)
	s := NewStats(f.deps)
	tests := []struct {
		name string
		pos  screen.Point
		want screen.Command
	}{
		{"nav home", screen.Point{X: 0.1, Y: 0.1}, screen.Push(screen.Home)},
		{"nav records", screen.Point{X: 0.5, Y: 0.1}, screen.Push(screen.Records)},
		{"nav stats", screen.Point{X: 0.9, Y: 0.1}, screen.None},
		{"start", screen.Point{X: 0.5, Y: 0.7}, screen.Push(screen.Active)},
		{"empty area", screen.Point{X: 0.5, Y: 1.5}, screen.None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Press(tt.pos); got != tt.want {
				t.Errorf("Press(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
	if got := s.Back(); got != screen.Push(screen.Home) {
		t.Errorf("Back = %v, want push(home)", got)
	}
}

func TestStatsScrollTintsAndClamps(t *testing.T) {
	f := newFixture(t)
	s := NewStats(f.deps)
	s.Scroll(screen.Point{X: 0.2, Y: 0.4})
	c := s.Color()
	if diff := c.B - 0.8; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("blue = %v, want 0.8", c.B)
	}
	if diff := c.R - 0.3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("red = %v, want 0.3", c.R)
	}
	s.Scroll(screen.Point{X: -10, Y: 10})
	if c := s.Color(); c.B != 1 || c.R != 0 {
		t.Errorf("color = %+v, want blue 1 red 0", c)
	}
}

func TestRecordsNavigationAndScroll(t *testing.T) {
	f := newFixture(t)
	r := NewRecords(f.deps)
	if got := r.Press(screen.Point{X: 0.1, Y: 0.1}); got != screen.Push(screen.Home) {
		t.Errorf("nav home = %v", got)
	}
	if got := r.Press(screen.Point{X: 0.5, Y: 0.1}); got != screen.None {
		t.Errorf("nav records = %v, want none", got)
	}
	if got := r.Press(screen.Point{X: 0.8, Y: 0.1}); got != screen.Push(screen.Stats) {
		t.Errorf("nav stats = %v", got)
	}
	r.Scroll(screen.Point{X: 1, Y: 0.25})
	r.Scroll(screen.Point{X: 0, Y: 0.5})
	if r.Offset() != 0.75 {
		t.Errorf("offset = %v, want 0.75", r.Offset())
	}
	now := f.clock.Now()
	if r.Expanded(now.Add(time.Second)) || !r.Expanded(now.Add(1001*time.Millisecond)) {
		t.Error("records should expand just after 1s")
	}
}

func TestActiveTrainingStartsFreshSession(t *testing.T) {
	f := newFixture(t)
	f.walk()
	if f.deps.Tracker.Snapshot().TotalDistance == 0 {
		t.Fatal("setup produced no distance")
	}
	NewActiveTraining(f.deps)
	if snap := f.deps.Tracker.Snapshot(); snap.TotalDistance != 0 || snap.Online {
		t.Errorf("tracker not reset: %+v", snap)
	}
	if f.source.starts != 1 {
		t.Errorf("starts = %d, want 1", f.source.starts)
	}
}

func TestActiveTrainingStatusTexts(t *testing.T) {
	f := newFixture(t)
	a := NewActiveTraining(f.deps)

	a.Update(f.clock.Now())
	if a.gpsStatus.Text != "GPS status: offline" {
		t.Errorf("status = %q", a.gpsStatus.Text)
	}

	f.deps.Tracker.OnProviderEnabled()
	f.deps.Tracker.OnLocation(52, 13, 12, 90)
	a.Update(f.clock.Now())
	if a.gpsStatus.Text != "GPS status: waiting (bad acc)" {
		t.Errorf("status = %q", a.gpsStatus.Text)
	}
	if a.gpsAcc.Text != "ACC: +-12.00m (not enough)" {
		t.Errorf("acc = %q", a.gpsAcc.Text)
	}

	f.clock.Advance(11 * time.Second)
	f.deps.Tracker.OnLocation(52.0, 13.0, 3, 100)
	f.deps.Tracker.OnLocation(52.0+10/geo.MetersPerDegree, 13.0, 3, 165)
	a.Update(f.clock.Now())
	want := map[string]string{
		"status": "GPS status: training online",
		"dist":   "10.00",
		"time":   "01:05",
		"acc":    "ACC: +-3.00m",
		"speed":  "0.15 m/s",
	}
	got := map[string]string{
		"status": a.gpsStatus.Text,
		"dist":   a.distVal.Text,
		"time":   a.timeVal.Text,
		"acc":    a.gpsAcc.Text,
		"speed":  a.speedVal.Text,
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("%s = %q, want %q", k, got[k], w)
		}
	}

	f.deps.Tracker.OnLocation(52.001, 13.0, 9, 170)
	a.Update(f.clock.Now())
	if a.gpsStatus.Text != "GPS status: training online (bad acc)" {
		t.Errorf("status = %q", a.gpsStatus.Text)
	}
	if a.distVal.Text != "10.00" {
		t.Errorf("distance text changed on bad accuracy: %q", a.distVal.Text)
	}
}

func TestActiveTrainingPause(t *testing.T) {
	f := newFixture(t)
	a := NewActiveTraining(f.deps)
	if got := a.Press(screen.Point{X: 0.5, Y: 1.8}); got != screen.None {
		t.Errorf("press outside pause button = %v", got)
	}
	if f.deps.Tracker.Snapshot().Paused {
		t.Fatal("paused by a miss")
	}
	if got := a.Press(screen.Point{X: 0.2, Y: 1.8}); got != screen.Push(screen.Paused) {
		t.Errorf("press pause = %v, want push(paused)", got)
	}
	if !f.deps.Tracker.Snapshot().Paused {
		t.Error("tracker not paused")
	}
	f.deps.Tracker.Resume()
	if got := a.Back(); got != screen.Push(screen.Paused) || !f.deps.Tracker.Snapshot().Paused {
		t.Errorf("Back = %v, paused = %v", got, f.deps.Tracker.Snapshot().Paused)
	}
}

func TestPausedContinue(t *testing.T) {
	f := newFixture(t)
	f.deps.Tracker.Pause()
	p := NewPaused(f.deps)
	if got := p.Press(screen.Point{X: 0.7, Y: 1.2}); got != screen.Pop() {
		t.Fatalf("continue = %v, want pop", got)
	}
	if f.deps.Tracker.Snapshot().Paused {
		t.Error("tracker still paused")
	}
	f.deps.Tracker.Pause()
	if got := p.Back(); got != screen.Pop() || f.deps.Tracker.Snapshot().Paused {
		t.Errorf("Back = %v, paused = %v", got, f.deps.Tracker.Snapshot().Paused)
	}
	if got := p.Press(screen.Point{X: 0.7, Y: 1.3}); got != screen.None {
		t.Errorf("press above buttons = %v, want none", got)
	}
	if p.Expanded(f.clock.Now().Add(time.Hour)) {
		t.Error("paused screen reported expanded")
	}
}

func TestPausedFinishRecordsSession(t *testing.T) {
	f := newFixture(t)
	f.walk()
	p := NewPaused(f.deps)
	if got := p.Press(screen.Point{X: 0.3, Y: 1.2}); got != screen.Push(screen.Home) {
		t.Fatalf("finish = %v, want push(home)", got)
	}
	r := f.deps.Book.Snapshot()
	if len(r.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(r.Records))
	}
	rec := r.Records[0]
	if d := rec.Distance - 10; d > 1e-6 || d < -1e-6 {
		t.Errorf("distance = %v, want 10", rec.Distance)
	}
	if rec.Time != 5 || rec.Speed != rec.Distance/5 {
		t.Errorf("record = %+v", rec)
	}
	if f.source.stops != 1 {
		t.Errorf("stops = %d, want 1", f.source.stops)
	}
	if !f.deps.Tracker.Snapshot().Paused {
		t.Error("tracker not paused after finish")
	}
}

func TestScreensDraw(t *testing.T) {
	f := newFixture(t)
	f.walk()
	f.deps.Book.Add(context.Background(), 1200, 600, 2)
	for id, factory := range Registry(f.deps) {
		t.Run(string(id), func(t *testing.T) {
			s, err := factory()
			if err != nil {
				t.Fatal(err)
			}
			c := gg.NewContext(90, 160)
			defer c.Close()
			s.Update(f.clock.Now())
			s.Draw(c, f.clock.Now())
			if _, _, _, a := c.Image().At(45, 150).RGBA(); a == 0 {
				t.Errorf("%s left the canvas transparent", id)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{65, "01:05"},
		{3600, "60:00"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.in); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
