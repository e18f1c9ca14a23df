package tail

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tessro/dial/internal/core"
)

var groove = core.Station{
	ID:       "somafm-groove-salad",
	Name:     "Groove Salad",
	Genre:    "Ambient",
	Language: "English",
	Country:  "United States",
}

func snap(s core.State, volume float64) *core.Snapshot {
	sn := core.SnapshotOf(s, volume)
	sn.At = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	return &sn
}

func types(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestDiff(t *testing.T) {
	other := core.Station{ID: "radio-paradise", Name: "Radio Paradise"}

	tests := []struct {
		name string
		prev *core.Snapshot
		curr *core.Snapshot
		want []EventType
	}{
		{"first snapshot loading", nil, snap(core.Loading{Station: groove}, 0.5), []EventType{EventTune}},
		{"first snapshot idle", nil, snap(core.Idle{}, 0.5), nil},
		{"idle to loading", snap(core.Idle{}, 0.5), snap(core.Loading{Station: groove}, 0.5), []EventType{EventTune}},
		{"loading to ready", snap(core.Loading{Station: groove}, 0.5), snap(core.Ready{Station: groove}, 0.5), []EventType{EventReady}},
		{"ready to playing", snap(core.Ready{Station: groove}, 0.5), snap(core.Playing{Station: groove}, 0.5), []EventType{EventPlaying}},
		{"playing to paused", snap(core.Playing{Station: groove}, 0.5), snap(core.Paused{Station: groove}, 0.5), []EventType{EventPause}},
		{"paused to playing", snap(core.Paused{Station: groove}, 0.5), snap(core.Playing{Station: groove}, 0.5), []EventType{EventResume}},
		{"playing to idle", snap(core.Playing{Station: groove}, 0.5), snap(core.Idle{}, 0.5), []EventType{EventStop}},
		{"loading to idle", snap(core.Loading{Station: groove}, 0.5), snap(core.Idle{}, 0.5), []EventType{EventLoadFailed}},
		{"loading to failed", snap(core.Loading{Station: groove}, 0.5), snap(core.Failed{Err: errors.New("boom")}, 0.5), []EventType{EventError}},
		{"switch station", snap(core.Playing{Station: groove}, 0.5), snap(core.Loading{Station: other}, 0.5), []EventType{EventTune}},
		{"volume only", snap(core.Playing{Station: groove}, 0.5), snap(core.Playing{Station: groove}, 0.8), []EventType{EventVolumeChange}},
		{"sub-percent volume", snap(core.Playing{Station: groove}, 0.5), snap(core.Playing{Station: groove}, 0.501), nil},
		{"no change", snap(core.Playing{Station: groove}, 0.5), snap(core.Playing{Station: groove}, 0.5), nil},
		{"nil current", snap(core.Idle{}, 0.5), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types(Diff(tt.prev, tt.curr))
			if len(got) != len(tt.want) {
				t.Fatalf("Diff() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Diff()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

type fakeSource struct {
	mu  sync.Mutex
	fns []func(core.Snapshot)
}

func (f *fakeSource) Subscribe(fn func(core.Snapshot)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fns = append(f.fns, fn)
	idx := len(f.fns) - 1
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.fns[idx] = nil
	}
}

func (f *fakeSource) publish(s *core.Snapshot) {
	f.mu.Lock()
	fns := append([]func(core.Snapshot){}, f.fns...)
	f.mu.Unlock()
	for _, fn := range fns {
		if fn != nil {
			fn(*s)
		}
	}
}

func TestWatcher(t *testing.T) {
	src := &fakeSource{}
	w := NewWatcher(src, 8)

	src.publish(snap(core.Loading{Station: groove}, 0.5))
	src.publish(snap(core.Ready{Station: groove}, 0.5))
	src.publish(snap(core.Playing{Station: groove}, 0.5))
	src.publish(snap(core.Idle{}, 0.5))
	w.Stop()

	var got []EventType
	for e := range w.Events() {
		got = append(got, e.Type)
	}
	want := []EventType{EventTune, EventReady, EventPlaying, EventStop}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Publishing after Stop must not panic.
	src.publish(snap(core.Loading{Station: groove}, 0.5))
	w.Stop()
}

func TestWatcherDropsWhenFull(t *testing.T) {
	src := &fakeSource{}
	w := NewWatcher(src, 1)
	defer w.Stop()

	src.publish(snap(core.Loading{Station: groove}, 0.5))
	src.publish(snap(core.Ready{Station: groove}, 0.5))

	if got := len(w.Events()); got != 1 {
		t.Errorf("buffered events = %d, want 1", got)
	}
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name string
		opts []FormatterOption
		prev *core.Snapshot
		curr *core.Snapshot
		want string
	}{
		{
			name: "now playing",
			opts: []FormatterOption{WithEmoji(false)},
			prev: snap(core.Ready{Station: groove}, 0.5),
			curr: snap(core.Playing{Station: groove}, 0.5),
			want: "Now playing: Groove Salad (English, United States)",
		},
		{
			name: "emoji and timestamp",
			opts: []FormatterOption{WithTimestamp(true)},
			prev: snap(core.Idle{}, 0.5),
			curr: snap(core.Loading{Station: groove}, 0.5),
			want: "15:04:05 📻 Tuning in: Groove Salad",
		},
		{
			name: "stop names previous station",
			opts: []FormatterOption{WithEmoji(false)},
			prev: snap(core.Playing{Station: groove}, 0.5),
			curr: snap(core.Idle{}, 0.5),
			want: "Stopped: Groove Salad",
		},
		{
			name: "error",
			opts: []FormatterOption{WithEmoji(false)},
			prev: snap(core.Loading{Station: groove}, 0.5),
			curr: snap(core.Failed{Err: errors.New("no renderer")}, 0.5),
			want: "Error: no renderer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := Diff(tt.prev, tt.curr)
			if len(events) != 1 {
				t.Fatalf("expected one event, got %d", len(events))
			}
			got := NewFormatter(tt.opts...).Format(events[0])
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTemplate(t *testing.T) {
	events := Diff(snap(core.Playing{Station: groove}, 0.5), snap(core.Playing{Station: groove}, 0.75))
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}

	f := NewFormatter(WithTemplate("{{.Type}} {{.StationID}} {{.Volume}}"))
	if got, want := f.Format(events[0]), "volume_change somafm-groove-salad 75"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestParseTemplateErrors(t *testing.T) {
	if _, err := ParseTemplate(""); err == nil {
		t.Error("expected error for empty template")
	}
	if _, err := ParseTemplate("{{.Station"); err == nil {
		t.Error("expected error for malformed template")
	}
}

func TestEventTypeNames(t *testing.T) {
	for typ := EventTune; typ <= EventVolumeChange; typ++ {
		name := EventTypeName(typ)
		if name == "unknown" || strings.Contains(name, " ") {
			t.Errorf("EventTypeName(%d) = %q", typ, name)
		}
	}
}
