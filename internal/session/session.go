// Package session implements the playback session: the single owner of
// the live audio resource and the state machine around it.
//
// Every operation runs on the session's own goroutine, one at a time.
// Public operations wait for their work to finish, so the snapshots they
// broadcast have been delivered when they return. Resource completions
// are queued as separate, later tasks. Observers run on the session
// goroutine and must not call Play, Pause, Resume, Stop, SetVolume or
// Close synchronously; the read accessors are safe anywhere.
package session

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tessro/dial/internal/bus"
	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
	"github.com/tessro/dial/internal/logging"
)

// FallbackPolicy decides what happens when a stream fails to load.
type FallbackPolicy string

const (
	// FallbackNone treats the first load error as terminal. A station's
	// fallback URLs are never consulted.
	FallbackNone FallbackPolicy = "none"
	// FallbackOrdered retries the station's fallback URLs in order, up to
	// a capped number of attempts, before giving up.
	FallbackOrdered FallbackPolicy = "ordered"
)

const (
	defaultVolume      = 0.5
	defaultMaxAttempts = 3
	defaultLoadTimeout = 15 * time.Second
)

// Session drives one audio resource at a time.
type Session struct {
	id          string
	provider    core.ResourceProvider
	bus         *bus.Bus[core.Snapshot]
	log         *log.Entry
	fallback    FallbackPolicy
	maxAttempts int
	loadTimeout time.Duration

	loop *loop
	snap atomic.Pointer[core.Snapshot]

	// Owned by the loop goroutine.
	state      core.State
	volume     float64
	res        core.Resource
	gen        uint64
	attempt    int
	cancelLoad context.CancelFunc
}

// Option configures a Session.
type Option func(*Session)

// WithVolume sets the initial volume, clamped to [0, 1].
func WithVolume(v float64) Option {
	return func(s *Session) { s.volume = core.ClampVolume(v) }
}

// WithFallback sets the load failure policy. maxAttempts caps the number
// of URLs tried per Play under FallbackOrdered; zero keeps the default.
func WithFallback(policy FallbackPolicy, maxAttempts int) Option {
	return func(s *Session) {
		s.fallback = policy
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
	}
}

// WithLoadTimeout bounds how long a resource may take to become ready.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// New creates an idle session that acquires resources from provider and
// publishes snapshots on b. Close must be called when done.
func New(provider core.ResourceProvider, b *bus.Bus[core.Snapshot], opts ...Option) *Session {
	id := uuid.NewString()
	s := &Session{
		id:          id,
		provider:    provider,
		bus:         b,
		log:         logging.For("session").WithField("session", id[:8]),
		fallback:    FallbackNone,
		maxAttempts: defaultMaxAttempts,
		loadTimeout: defaultLoadTimeout,
		state:       core.Idle{},
		volume:      defaultVolume,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap := core.SnapshotOf(s.state, s.volume)
	s.snap.Store(&snap)
	s.loop = newLoop()
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Subscribe registers an observer for every future snapshot.
func (s *Session) Subscribe(fn func(core.Snapshot)) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

// Play starts station. If station is already the session's station and a
// resource exists, Play toggles between paused and playing instead.
func (s *Session) Play(station core.Station) {
	s.loop.call(func() { s.play(station) })
}

// Pause pauses the live resource. It is a no-op without one.
func (s *Session) Pause() {
	s.loop.call(s.pause)
}

// Resume asks the live resource to render. The playing snapshot follows
// when the resource confirms. It is a no-op without a resource.
func (s *Session) Resume() {
	s.loop.call(s.resume)
}

// Stop releases any resource and returns to idle. Safe to call repeatedly.
func (s *Session) Stop() {
	s.loop.call(s.stop)
}

// SetVolume clamps v to [0, 1], applies it to the live resource and keeps
// it for future resources.
func (s *Session) SetVolume(v float64) {
	s.loop.call(func() { s.setVolume(v) })
}

// Close stops playback, drops every observer and ends the session
// goroutine. Operations after Close do nothing.
func (s *Session) Close() {
	s.loop.call(func() {
		s.release()
		s.state = core.Idle{}
		snap := core.SnapshotOf(s.state, s.volume)
		s.snap.Store(&snap)
		s.bus.UnsubscribeAll()
	})
	s.loop.close()
	s.log.Debug("session closed")
}

// Snapshot returns the most recently published snapshot.
func (s *Session) Snapshot() core.Snapshot {
	return *s.snap.Load()
}

// CurrentStation returns the session's station, or nil.
func (s *Session) CurrentStation() *core.Station {
	snap := s.snap.Load()
	if snap.Station == nil {
		return nil
	}
	st := *snap.Station
	return &st
}

// IsPlaying reports whether audio is rendering.
func (s *Session) IsPlaying() bool {
	return s.snap.Load().IsPlaying
}

// Volume returns the session volume in [0, 1].
func (s *Session) Volume() float64 {
	return s.snap.Load().Volume
}

// State returns the current state kind.
func (s *Session) State() core.StateKind {
	return s.snap.Load().State
}

func (s *Session) play(station core.Station) {
	if cur := core.StationOf(s.state); cur != nil && cur.ID == station.ID && s.res != nil {
		s.toggle()
		return
	}

	s.release()
	s.attempt = 0
	s.acquire(station, true)
}

func (s *Session) toggle() {
	switch s.state.(type) {
	case core.Loading, core.Ready:
		// The resource starts on its own once ready.
		s.log.Debug("toggle while loading ignored")
	default:
		if s.res.IsPlaying() {
			s.pause()
		} else {
			s.resume()
		}
	}
}

func (s *Session) acquire(station core.Station, announce bool) {
	urls := station.URLs()
	url := urls[s.attempt]

	s.gen++
	gen := s.gen
	if announce {
		s.transition(core.Loading{Station: station})
	}

	entry := s.log.WithFields(log.Fields{
		"station": station.ID,
		"attempt": s.attempt + 1,
		"gen":     gen,
	})
	entry.Debugf("acquiring %s", url)

	res, err := s.provider.Acquire(core.AcquireRequest{
		Station: station,
		URL:     url,
		Format:  station.Format,
		Volume:  s.volume,
	}, s.emitter(gen))
	if err != nil {
		entry.WithError(err).Warn("acquire failed")
		s.transition(core.Failed{Err: fmt.Errorf("%w: %w", dialerrors.ErrAcquireFailed, err)})
		return
	}

	s.res = res
	ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
	s.cancelLoad = cancel
	res.Load(ctx)
}

// emitter returns the event callback for the acquisition numbered gen.
// Events are queued as later tasks and dropped if gen is no longer current
// when they run.
func (s *Session) emitter(gen uint64) func(core.ResourceEvent) {
	return func(ev core.ResourceEvent) {
		s.loop.post(func() { s.handle(gen, ev) })
	}
}

func (s *Session) handle(gen uint64, ev core.ResourceEvent) {
	if gen != s.gen || s.res == nil {
		s.log.WithFields(log.Fields{"gen": gen, "current": s.gen}).Debugf("dropping stale %s event", ev.Type)
		return
	}

	station := core.StationOf(s.state)
	if station == nil {
		return
	}

	switch ev.Type {
	case core.EventReady:
		if _, loading := s.state.(core.Loading); loading {
			s.transition(core.Ready{Station: *station})
			s.res.Play()
		}
	case core.EventPlaying:
		if _, playing := s.state.(core.Playing); !playing {
			s.transition(core.Playing{Station: *station})
		}
	case core.EventPaused:
		switch s.state.(type) {
		case core.Playing, core.Ready:
			s.transition(core.Paused{Station: *station})
		}
	case core.EventStopped:
		s.log.WithField("station", station.ID).Info("resource stopped on its own")
		s.release()
		s.transition(core.Idle{})
	case core.EventLoadError:
		s.log.WithError(ev.Err).WithField("station", station.ID).Warn("load error")
		s.release()
		if s.retry(*station) {
			return
		}
		s.transition(core.Idle{})
	}
}

// retry moves to the station's next URL under FallbackOrdered. It reports
// whether a new attempt was started.
func (s *Session) retry(station core.Station) bool {
	if s.fallback != FallbackOrdered {
		return false
	}
	limit := min(len(station.URLs()), s.maxAttempts)
	if s.attempt+1 >= limit {
		return false
	}
	s.attempt++
	s.acquire(station, false)
	return true
}

func (s *Session) pause() {
	if s.res == nil {
		return
	}
	s.res.Pause()
	if station := core.StationOf(s.state); station != nil {
		s.transition(core.Paused{Station: *station})
	}
}

func (s *Session) resume() {
	if s.res == nil {
		return
	}
	s.res.Play()
}

func (s *Session) stop() {
	s.release()
	s.attempt = 0
	s.transition(core.Idle{})
}

func (s *Session) setVolume(v float64) {
	s.volume = core.ClampVolume(v)
	if s.res != nil {
		s.res.SetVolume(s.volume)
	}
	s.transition(s.state)
}

// release stops and unloads the resource. Bumping gen first makes any
// event it fires while shutting down stale.
func (s *Session) release() {
	if s.res == nil {
		return
	}
	s.gen++
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	res := s.res
	s.res = nil
	res.Stop()
	res.Unload()
}

func (s *Session) transition(next core.State) {
	prev := s.state
	s.state = next
	snap := core.SnapshotOf(next, s.volume)
	s.snap.Store(&snap)

	if prev.Kind() != next.Kind() {
		s.log.Debugf("%s -> %s", prev.Kind(), next.Kind())
	}
	s.bus.Publish(snap)
}
