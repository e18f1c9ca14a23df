package tui

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tessro/dial/internal/core"
)

type fakePlayer struct {
	mu     sync.Mutex
	snap   core.Snapshot
	played []string
	calls  []string
	volume float64
	subs   []func(core.Snapshot)
}

func (f *fakePlayer) Play(st core.Station) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, st.ID)
}

func (f *fakePlayer) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakePlayer) Pause()  { f.record("pause") }
func (f *fakePlayer) Resume() { f.record("resume") }
func (f *fakePlayer) Stop()   { f.record("stop") }

func (f *fakePlayer) SetVolume(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
}

func (f *fakePlayer) Snapshot() core.Snapshot { return f.snap }

func (f *fakePlayer) Subscribe(fn func(core.Snapshot)) func() {
	f.subs = append(f.subs, fn)
	return func() {}
}

var testStations = []core.Station{
	{ID: "vividh-bharati", Name: "Vividh Bharati", Genre: "Film", Language: "Hindi", Country: "India"},
	{ID: "suryan-fm", Name: "Suryan FM", Genre: "Film", Language: "Tamil", Country: "India"},
	{ID: "groove-salad", Name: "Groove Salad", Genre: "Ambient", Language: "English", Country: "United States"},
}

func newTestModel(p *fakePlayer) Model {
	p.snap = core.SnapshotOf(core.Idle{}, 0.5)
	return NewModel(NewApp(p, testStations), make(chan core.Snapshot))
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEnterPlaysSelectedStation(t *testing.T) {
	p := &fakePlayer{}
	m := newTestModel(p)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command for enter")
	}
	cmd()

	if len(p.played) != 1 || p.played[0] != "suryan-fm" {
		t.Errorf("played = %v, want [suryan-fm]", p.played)
	}
}

func TestSelectionStopsAtEnds(t *testing.T) {
	p := &fakePlayer{}
	m := newTestModel(p)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	for i := 0; i < 10; i++ {
		m, _ = press(t, m, runes("j"))
	}
	if got := m.stationsView.Selected(); got != len(testStations)-1 {
		t.Errorf("Selected() = %d, want %d", got, len(testStations)-1)
	}
}

func TestPauseResumeFollowsState(t *testing.T) {
	tests := []struct {
		name  string
		state core.State
		want  []string
	}{
		{"playing pauses", core.Playing{Station: testStations[0]}, []string{"pause"}},
		{"paused resumes", core.Paused{Station: testStations[0]}, []string{"resume"}},
		{"loading ignored", core.Loading{Station: testStations[0]}, nil},
		{"idle ignored", core.Idle{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePlayer{}
			m := newTestModel(p)
			next, _ := m.Update(snapshotMsg(core.SnapshotOf(tt.state, 0.5)))
			m = next.(Model)

			_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
			if cmd != nil {
				cmd()
			}
			if strings.Join(p.calls, ",") != strings.Join(tt.want, ",") {
				t.Errorf("calls = %v, want %v", p.calls, tt.want)
			}
		})
	}
}

func TestStopAndVolumeKeys(t *testing.T) {
	p := &fakePlayer{}
	m := newTestModel(p)

	_, cmd := press(t, m, runes("s"))
	cmd()
	if len(p.calls) != 1 || p.calls[0] != "stop" {
		t.Errorf("calls = %v, want [stop]", p.calls)
	}

	_, cmd = press(t, m, runes("+"))
	cmd()
	if math.Abs(p.volume-0.55) > 1e-9 {
		t.Errorf("volume = %v, want 0.55", p.volume)
	}

	_, cmd = press(t, m, runes("-"))
	cmd()
	if math.Abs(p.volume-0.45) > 1e-9 {
		t.Errorf("volume = %v, want 0.45", p.volume)
	}
}

func TestFilterNarrowsList(t *testing.T) {
	p := &fakePlayer{}
	m := newTestModel(p)

	m, _ = press(t, m, runes("/"))
	if !m.filtering {
		t.Fatal("expected filter mode after /")
	}
	m, _ = press(t, m, runes("tamil"))
	if len(m.visible) != 1 || m.visible[0].ID != "suryan-fm" {
		t.Fatalf("visible = %v, want [suryan-fm]", m.visible)
	}

	// Keys typed into the filter must not control playback.
	m, _ = press(t, m, runes("s"))
	if len(p.calls) != 0 {
		t.Errorf("calls = %v, want none while filtering", p.calls)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.filtering || len(m.visible) != len(testStations) {
		t.Errorf("esc should clear the filter, got filtering=%v visible=%d", m.filtering, len(m.visible))
	}
}

func TestFilterStations(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 3},
		{"india", 2},
		{"FILM", 2},
		{"groove", 1},
		{"polka", 0},
	}
	for _, tt := range tests {
		if got := len(filterStations(testStations, tt.text)); got != tt.want {
			t.Errorf("filterStations(%q) = %d stations, want %d", tt.text, got, tt.want)
		}
	}
}

func TestTickClearsExpiredError(t *testing.T) {
	m := newTestModel(&fakePlayer{})
	m.showError(errors.New("renderer went away"))

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if m.lastError == nil {
		t.Error("error cleared before it expired")
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	next, _ = m.Update(tickMsg(time.Now().Add(errorTTL + time.Second)))
	if next.(Model).lastError != nil {
		t.Error("expired error still shown")
	}
}

func TestSubscribeKeepsLatest(t *testing.T) {
	p := &fakePlayer{}
	updates, unsub := subscribe(p)
	defer unsub()

	for _, v := range []float64{0.1, 0.2, 0.3} {
		p.subs[0](core.SnapshotOf(core.Idle{}, v))
	}

	got := <-updates
	if got.Volume != 0.3 {
		t.Errorf("Volume = %v, want 0.3", got.Volume)
	}
	select {
	case s := <-updates:
		t.Errorf("unexpected extra snapshot %+v", s)
	default:
	}
}

func TestViewShowsNowPlaying(t *testing.T) {
	p := &fakePlayer{}
	m := newTestModel(p)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(Model)
	next, _ = m.Update(snapshotMsg(core.SnapshotOf(core.Playing{Station: testStations[2]}, 0.5)))
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"Groove Salad", "Playing", "Stations"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
