// Package trace reads recorded GPS traces and plays them into a location
// sink, standing in for the platform location provider on the desktop.
package trace

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skygrel/panther/internal/track"
)

var (
	ErrEmptyTrace = errors.New("trace: no events")
	ErrInvalid    = errors.New("trace: invalid event")
)

const (
	ProviderEnabled  = "enabled"
	ProviderDisabled = "disabled"
)

// Event is one entry of a trace: either a provider notification or a
// location sample. At is the offset from the start of the trace.
type Event struct {
	At       time.Duration `yaml:"at"`
	Provider string        `yaml:"provider,omitempty"`

	track.LocationMetric `yaml:",inline"`
}

func (e Event) IsProvider() bool {
	return e.Provider != ""
}

// Trace is a named list of events in time order. Epoch is the Unix time of
// the first event; sample timestamps default to Epoch plus At.
type Trace struct {
	Name   string  `yaml:"name"`
	Epoch  float64 `yaml:"epoch"`
	Events []Event `yaml:"events"`
}

// Start is Epoch as a time.
func (t *Trace) Start() time.Time {
	sec := int64(t.Epoch)
	return time.Unix(sec, int64((t.Epoch-float64(sec))*1e9))
}

// Duration is the offset of the last event.
func (t *Trace) Duration() time.Duration {
	if len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].At
}

func Parse(data []byte) (*Trace, error) {
	var t Trace
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTrace
		}
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	if err := t.normalize(); err != nil {
		return nil, err
	}
	return &t, nil
}

func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Write encodes t as YAML.
func Write(w io.Writer, t *Trace) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}

func (t *Trace) normalize() error {
	if len(t.Events) == 0 {
		return ErrEmptyTrace
	}
	var prev time.Duration
	for i := range t.Events {
		e := &t.Events[i]
		if e.At < prev {
			return fmt.Errorf("%w: event %d at %s is before %s", ErrInvalid, i, e.At, prev)
		}
		prev = e.At
		switch e.Provider {
		case "":
			if e.Timestamp == 0 {
				e.Timestamp = t.Epoch + e.At.Seconds()
			}
		case ProviderEnabled, ProviderDisabled:
		default:
			return fmt.Errorf("%w: event %d has provider %q", ErrInvalid, i, e.Provider)
		}
	}
	return nil
}

// deliver hands one event to sink.
func deliver(sink track.Sink, e Event) (track.Outcome, bool) {
	switch e.Provider {
	case ProviderEnabled:
		sink.OnProviderEnabled()
	case ProviderDisabled:
		sink.OnProviderDisabled()
	default:
		return sink.OnLocation(e.Latitude, e.Longitude, e.Accuracy, e.Timestamp), true
	}
	return 0, false
}
