package session

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/tessro/dial/internal/bus"
	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
)

type fakeProvider struct {
	mu         sync.Mutex
	autoReady  bool
	autoPlay   bool
	failURLs   map[string]bool
	acquireErr error
	resources  []*fakeResource
}

func (p *fakeProvider) Acquire(req core.AcquireRequest, emit func(core.ResourceEvent)) (core.Resource, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	r := &fakeResource{provider: p, req: req, emit: emit, volume: req.Volume}
	p.mu.Lock()
	p.resources = append(p.resources, r)
	p.mu.Unlock()
	return r, nil
}

func (p *fakeProvider) acquired() []*fakeResource {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*fakeResource(nil), p.resources...)
}

type fakeResource struct {
	provider *fakeProvider
	req      core.AcquireRequest
	emit     func(core.ResourceEvent)

	mu       sync.Mutex
	playing  bool
	volume   float64
	unloaded bool
	calls    []string
}

func (r *fakeResource) record(call string) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}

func (r *fakeResource) Load(ctx context.Context) {
	r.record("load")
	switch {
	case r.provider.failURLs[r.req.URL]:
		r.emit(core.ResourceEvent{Type: core.EventLoadError, Err: dialerrors.ErrStreamUnreachable})
	case r.provider.autoReady:
		r.emit(core.ResourceEvent{Type: core.EventReady})
	}
}

func (r *fakeResource) Play() {
	r.record("play")
	r.mu.Lock()
	r.playing = true
	r.mu.Unlock()
	if r.provider.autoPlay {
		r.emit(core.ResourceEvent{Type: core.EventPlaying})
	}
}

func (r *fakeResource) Pause() {
	r.record("pause")
	r.mu.Lock()
	r.playing = false
	r.mu.Unlock()
	r.emit(core.ResourceEvent{Type: core.EventPaused})
}

func (r *fakeResource) Stop() {
	r.record("stop")
	r.mu.Lock()
	r.playing = false
	r.mu.Unlock()
	r.emit(core.ResourceEvent{Type: core.EventStopped})
}

func (r *fakeResource) Unload() {
	r.record("unload")
	r.mu.Lock()
	r.unloaded = true
	r.mu.Unlock()
}

func (r *fakeResource) SetVolume(v float64) {
	r.mu.Lock()
	r.volume = v
	r.mu.Unlock()
}

func (r *fakeResource) IsPlaying() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}

func (r *fakeResource) isUnloaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unloaded
}

type recorder struct {
	mu    sync.Mutex
	snaps []core.Snapshot
}

func (r *recorder) observe(s core.Snapshot) {
	r.mu.Lock()
	r.snaps = append(r.snaps, s)
	r.mu.Unlock()
}

func (r *recorder) all() []core.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Snapshot(nil), r.snaps...)
}

func (r *recorder) kinds() []core.StateKind {
	var out []core.StateKind
	for _, s := range r.all() {
		out = append(out, s.State)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.snaps = nil
	r.mu.Unlock()
}

var (
	stationA = core.Station{ID: "a", Name: "Station A", StreamURL: "http://a/stream", Format: "mp3"}
	stationB = core.Station{ID: "b", Name: "Station B", StreamURL: "http://b/stream", Format: "mp3"}
)

func newTestSession(t *testing.T, p *fakeProvider, opts ...Option) (*Session, *recorder) {
	t.Helper()
	s := New(p, bus.New[core.Snapshot](), opts...)
	rec := &recorder{}
	s.Subscribe(rec.observe)
	t.Cleanup(s.Close)
	return s, rec
}

// settle waits until every task queued so far, including resource events,
// has run.
func settle(s *Session) {
	s.loop.call(func() {})
	s.loop.call(func() {})
}

func checkInvariants(t *testing.T, snaps []core.Snapshot) {
	t.Helper()
	for i, s := range snaps {
		if s.IsPlaying && s.IsLoading {
			t.Errorf("snapshot %d is both playing and loading", i)
		}
		if s.IsPlaying && s.Station == nil {
			t.Errorf("snapshot %d is playing without a station", i)
		}
	}
}

func TestPlayLifecycle(t *testing.T) {
	p := &fakeProvider{autoReady: true, autoPlay: true}
	s, rec := newTestSession(t, p)

	s.Play(stationA)
	settle(s)

	want := []core.StateKind{core.StateLoading, core.StateReady, core.StatePlaying}
	if got := rec.kinds(); !reflect.DeepEqual(got, want) {
		t.Fatalf("transitions = %v, want %v", got, want)
	}
	checkInvariants(t, rec.all())

	if !s.IsPlaying() {
		t.Error("IsPlaying() = false, want true")
	}
	if st := s.CurrentStation(); st == nil || st.ID != "a" {
		t.Errorf("CurrentStation() = %v, want a", st)
	}
	if ready := rec.all()[1]; ready.IsPlaying || ready.IsLoading {
		t.Errorf("ready snapshot = %+v, want neither playing nor loading", ready)
	}
	if got := p.acquired()[0].req.URL; got != stationA.StreamURL {
		t.Errorf("acquired URL = %q, want %q", got, stationA.StreamURL)
	}
}

func TestPlayBroadcastsLoadingBeforeReturning(t *testing.T) {
	p := &fakeProvider{}
	s, rec := newTestSession(t, p)

	s.Play(stationA)

	snaps := rec.all()
	if len(snaps) != 1 || !snaps[0].IsLoading || snaps[0].Station == nil || snaps[0].Station.ID != "a" {
		t.Fatalf("snapshots after Play = %+v, want one loading snapshot for a", snaps)
	}
}

func TestPlaySameStationToggles(t *testing.T) {
	p := &fakeProvider{autoReady: true, autoPlay: true}
	s, rec := newTestSession(t, p)

	s.Play(stationA)
	settle(s)
	rec.reset()

	s.Play(stationA)
	settle(s)
	if got := s.State(); got != core.StatePaused {
		t.Fatalf("State() after second Play = %s, want paused", got)
	}
	if snap := s.Snapshot(); snap.Station == nil || snap.Station.ID != "a" {
		t.Errorf("paused snapshot lost the station: %+v", snap)
	}

	s.Play(stationA)
	settle(s)
	if got := s.State(); got != core.StatePlaying {
		t.Fatalf("State() after third Play = %s, want playing", got)
	}

	if n := len(p.acquired()); n != 1 {
		t.Errorf("resources acquired = %d, want 1", n)
	}
	for _, k := range rec.kinds() {
		if k == core.StateLoading {
			t.Error("toggle entered loading")
		}
	}
	if p.acquired()[0].isUnloaded() {
		t.Error("toggle released the resource")
	}
}

func TestPlayWhileLoadingSameStationDoesNotReload(t *testing.T) {
	p := &fakeProvider{}
	s, _ := newTestSession(t, p)

	s.Play(stationA)
	s.Play(stationA)
	settle(s)

	if n := len(p.acquired()); n != 1 {
		t.Errorf("resources acquired = %d, want 1", n)
	}
	if got := s.State(); got != core.StateLoading {
		t.Errorf("State() = %s, want loading", got)
	}
}

func TestStaleCompletionIgnored(t *testing.T) {
	p := &fakeProvider{}
	s, rec := newTestSession(t, p)

	s.Play(stationA)
	s.Play(stationB)
	settle(s)

	resources := p.acquired()
	if len(resources) != 2 {
		t.Fatalf("resources acquired = %d, want 2", len(resources))
	}
	first := resources[0]
	if !first.isUnloaded() {
		t.Error("first resource was not released on switch")
	}

	rec.reset()
	first.emit(core.ResourceEvent{Type: core.EventReady})
	first.emit(core.ResourceEvent{Type: core.EventPlaying})
	first.emit(core.ResourceEvent{Type: core.EventLoadError, Err: errors.New("late")})
	settle(s)

	if snaps := rec.all(); len(snaps) != 0 {
		t.Errorf("stale events caused broadcasts: %v", rec.kinds())
	}
	if st := s.CurrentStation(); st == nil || st.ID != "b" {
		t.Errorf("CurrentStation() = %v, want b", st)
	}
	if got := s.State(); got != core.StateLoading {
		t.Errorf("State() = %s, want loading", got)
	}
}

func TestStopIdempotent(t *testing.T) {
	p := &fakeProvider{autoReady: true, autoPlay: true}
	s, rec := newTestSession(t, p)

	s.Play(stationA)
	settle(s)
	rec.reset()

	s.Stop()
	s.Stop()
	settle(s)

	snaps := rec.all()
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(snaps))
	}
	for i, snap := range snaps {
		if snap.State != core.StateIdle || snap.IsPlaying || snap.IsLoading || snap.Station != nil || snap.Err != nil {
			t.Errorf("snapshot %d = %+v, want idle", i, snap)
		}
	}

	res := p.acquired()[0]
	if !res.isUnloaded() {
		t.Error("Stop did not release the resource")
	}
}

func TestStopWhenIdle(t *testing.T) {
	s, rec := newTestSession(t, &fakeProvider{})

	s.Stop()
	s.Stop()

	if got := rec.kinds(); !reflect.DeepEqual(got, []core.StateKind{core.StateIdle, core.StateIdle}) {
		t.Errorf("transitions = %v, want two idle snapshots", got)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{1.5, 1},
		{0.25, 0.25},
	}

	for _, tt := range tests {
		p := &fakeProvider{autoReady: true, autoPlay: true}
		s, rec := newTestSession(t, p)

		s.Play(stationA)
		settle(s)
		rec.reset()

		s.SetVolume(tt.in)
		if got := s.Volume(); got != tt.want {
			t.Errorf("SetVolume(%v): Volume() = %v, want %v", tt.in, got, tt.want)
		}
		snaps := rec.all()
		if len(snaps) != 1 || snaps[0].Volume != tt.want || snaps[0].State != core.StatePlaying {
			t.Errorf("SetVolume(%v) snapshots = %+v", tt.in, snaps)
		}
		res := p.acquired()[0]
		res.mu.Lock()
		got := res.volume
		res.mu.Unlock()
		if got != tt.want {
			t.Errorf("SetVolume(%v): resource volume = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetVolumeWithoutResourceIsDefault(t *testing.T) {
	p := &fakeProvider{}
	s, rec := newTestSession(t, p)

	s.SetVolume(0.8)
	if len(rec.all()) != 1 {
		t.Errorf("snapshots = %d, want 1", len(rec.all()))
	}

	s.Play(stationA)
	if got := p.acquired()[0].req.Volume; got != 0.8 {
		t.Errorf("acquire volume = %v, want 0.8", got)
	}
}

func TestLoadErrorReturnsToIdle(t *testing.T) {
	p := &fakeProvider{failURLs: map[string]bool{stationA.StreamURL: true}}
	s, rec := newTestSession(t, p)

	s.Play(stationA)
	settle(s)

	snaps := rec.all()
	if got := rec.kinds(); !reflect.DeepEqual(got, []core.StateKind{core.StateLoading, core.StateIdle}) {
		t.Fatalf("transitions = %v, want loading, idle", got)
	}
	last := snaps[len(snaps)-1]
	if last.Station != nil || last.Err != nil || last.IsPlaying || last.IsLoading {
		t.Errorf("terminal snapshot = %+v, want no station and no error", last)
	}
	if !p.acquired()[0].isUnloaded() {
		t.Error("failed resource was not released")
	}
}

func TestAcquireFailureCarriesError(t *testing.T) {
	p := &fakeProvider{acquireErr: errors.New("no renderer")}
	s, rec := newTestSession(t, p)

	s.Play(stationA)

	snaps := rec.all()
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %v, want loading then failed", rec.kinds())
	}
	last := snaps[1]
	if last.State != core.StateFailed || last.Station != nil {
		t.Errorf("snapshot = %+v, want failed without station", last)
	}
	if !errors.Is(last.Err, dialerrors.ErrAcquireFailed) {
		t.Errorf("Err = %v, want ErrAcquireFailed", last.Err)
	}
}

func TestFallbackPolicies(t *testing.T) {
	station := core.Station{
		ID:           "f",
		StreamURL:    "http://primary",
		FallbackURLs: []string{"http://second", "http://third"},
		Format:       "mp3",
	}

	tests := []struct {
		name      string
		opts      []Option
		fail      []string
		wantURLs  []string
		wantFinal core.StateKind
	}{
		{
			name:      "none by default",
			fail:      []string{"http://primary"},
			wantURLs:  []string{"http://primary"},
			wantFinal: core.StateIdle,
		},
		{
			name:      "ordered recovers",
			opts:      []Option{WithFallback(FallbackOrdered, 3)},
			fail:      []string{"http://primary", "http://second"},
			wantURLs:  []string{"http://primary", "http://second", "http://third"},
			wantFinal: core.StatePlaying,
		},
		{
			name:      "ordered capped",
			opts:      []Option{WithFallback(FallbackOrdered, 2)},
			fail:      []string{"http://primary", "http://second", "http://third"},
			wantURLs:  []string{"http://primary", "http://second"},
			wantFinal: core.StateIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{autoReady: true, autoPlay: true, failURLs: map[string]bool{}}
			for _, u := range tt.fail {
				p.failURLs[u] = true
			}
			s, rec := newTestSession(t, p, tt.opts...)

			s.Play(station)
			for range station.URLs() {
				settle(s)
			}

			var urls []string
			for _, r := range p.acquired() {
				urls = append(urls, r.req.URL)
			}
			if !reflect.DeepEqual(urls, tt.wantURLs) {
				t.Errorf("attempted %v, want %v", urls, tt.wantURLs)
			}
			if got := s.State(); got != tt.wantFinal {
				t.Errorf("final state = %s, want %s", got, tt.wantFinal)
			}

			kinds := rec.kinds()
			loading := 0
			for _, k := range kinds[:len(kinds)-1] {
				if k == core.StateIdle {
					t.Errorf("went idle before giving up: %v", kinds)
				}
				if k == core.StateLoading {
					loading++
				}
			}
			if loading != 1 {
				t.Errorf("loading broadcast %d times, want 1", loading)
			}
		})
	}
}

func TestUnsolicitedStopReturnsToIdle(t *testing.T) {
	p := &fakeProvider{autoReady: true, autoPlay: true}
	s, rec := newTestSession(t, p)

	s.Play(stationA)
	settle(s)
	rec.reset()

	res := p.acquired()[0]
	res.emit(core.ResourceEvent{Type: core.EventStopped})
	settle(s)

	if got := rec.kinds(); !reflect.DeepEqual(got, []core.StateKind{core.StateIdle}) {
		t.Errorf("transitions = %v, want idle", got)
	}
	if !res.isUnloaded() {
		t.Error("resource was not released")
	}
}

func TestPauseResumeWithoutResource(t *testing.T) {
	s, rec := newTestSession(t, &fakeProvider{})

	s.Pause()
	s.Resume()
	settle(s)

	if n := len(rec.all()); n != 0 {
		t.Errorf("snapshots = %d, want 0", n)
	}
}

func TestResumeWaitsForResource(t *testing.T) {
	p := &fakeProvider{autoReady: true}
	s, rec := newTestSession(t, p)

	s.Play(stationA)
	settle(s)
	res := p.acquired()[0]
	res.emit(core.ResourceEvent{Type: core.EventPlaying})
	settle(s)

	s.Pause()
	settle(s)
	if got := s.State(); got != core.StatePaused {
		t.Fatalf("State() = %s, want paused", got)
	}

	rec.reset()
	s.Resume()
	settle(s)
	if n := len(rec.all()); n != 0 {
		t.Errorf("Resume broadcast %v before the resource confirmed", rec.kinds())
	}

	res.emit(core.ResourceEvent{Type: core.EventPlaying})
	settle(s)
	if got := rec.kinds(); !reflect.DeepEqual(got, []core.StateKind{core.StatePlaying}) {
		t.Errorf("transitions = %v, want playing", got)
	}
}

func TestCloseReleasesAndDetaches(t *testing.T) {
	p := &fakeProvider{autoReady: true, autoPlay: true}
	b := bus.New[core.Snapshot]()
	s := New(p, b)
	rec := &recorder{}
	s.Subscribe(rec.observe)

	s.Play(stationA)
	settle(s)
	s.Close()

	if b.Len() != 0 {
		t.Errorf("bus has %d observers after Close", b.Len())
	}
	if !p.acquired()[0].isUnloaded() {
		t.Error("Close did not release the resource")
	}
	if s.State() != core.StateIdle {
		t.Errorf("State() = %s after Close, want idle", s.State())
	}

	s.Play(stationB)
	s.Close()
	if n := len(p.acquired()); n != 1 {
		t.Errorf("Play after Close acquired a resource")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	p := &fakeProvider{autoReady: true, autoPlay: true}
	s1, _ := newTestSession(t, p)
	s2, _ := newTestSession(t, p)

	s1.Play(stationA)
	settle(s1)

	if s2.State() != core.StateIdle {
		t.Errorf("second session state = %s, want idle", s2.State())
	}
	if s1.ID() == s2.ID() {
		t.Error("sessions share an ID")
	}
}
