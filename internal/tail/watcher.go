package tail

import (
	"sync"
	"time"

	"github.com/tessro/dial/internal/core"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventTune EventType = iota
	EventReady
	EventPlaying
	EventPause
	EventResume
	EventStop
	EventLoadFailed
	EventError
	EventVolumeChange
)

// Event represents a playback state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *core.Snapshot
	Current   *core.Snapshot
}

// Subscriber is anything snapshots can be observed on.
type Subscriber interface {
	Subscribe(fn func(core.Snapshot)) (unsubscribe func())
}

// Watcher turns the snapshots published by a session into events.
type Watcher struct {
	mu      sync.Mutex
	prev    *core.Snapshot
	events  chan Event
	stopped bool
	unsub   func()
}

// NewWatcher subscribes to sub. Events that don't fit in the buffer are
// dropped rather than holding up the publisher.
func NewWatcher(sub Subscriber, buffer int) *Watcher {
	if buffer <= 0 {
		buffer = 16
	}
	w := &Watcher{events: make(chan Event, buffer)}
	w.unsub = sub.Subscribe(w.observe)
	return w
}

// Events returns the channel of playback events. It is closed by Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop unsubscribes and closes the event channel.
func (w *Watcher) Stop() {
	w.unsub()

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.stopped {
		w.stopped = true
		close(w.events)
	}
}

func (w *Watcher) observe(snap core.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	for _, e := range Diff(w.prev, &snap) {
		select {
		case w.events <- e:
		default:
			// Drop event if channel is full
		}
	}
	w.prev = &snap
}

// Diff compares two snapshots and returns the events between them. A nil
// prev is treated as idle.
func Diff(prev, curr *core.Snapshot) []Event {
	if curr == nil {
		return nil
	}
	if prev == nil {
		idle := core.SnapshotOf(core.Idle{}, curr.Volume)
		prev = &idle
	}

	ev := func(t EventType) Event {
		return Event{Type: t, Timestamp: curr.At, Previous: prev, Current: curr}
	}

	var events []Event

	if stationChanged(prev, curr) && curr.State == core.StateLoading {
		events = append(events, ev(EventTune))
	}

	if prev.State != curr.State {
		switch curr.State {
		case core.StateReady:
			events = append(events, ev(EventReady))
		case core.StatePlaying:
			if prev.State == core.StatePaused {
				events = append(events, ev(EventResume))
			} else {
				events = append(events, ev(EventPlaying))
			}
		case core.StatePaused:
			events = append(events, ev(EventPause))
		case core.StateIdle:
			switch prev.State {
			case core.StateLoading, core.StateReady:
				events = append(events, ev(EventLoadFailed))
			case core.StatePlaying, core.StatePaused:
				events = append(events, ev(EventStop))
			}
		case core.StateFailed:
			events = append(events, ev(EventError))
		}
	}

	if core.PercentOf(prev.Volume) != core.PercentOf(curr.Volume) {
		events = append(events, ev(EventVolumeChange))
	}

	return events
}

func stationChanged(prev, curr *core.Snapshot) bool {
	if prev.Station == nil && curr.Station == nil {
		return false
	}
	if prev.Station == nil || curr.Station == nil {
		return true
	}
	return prev.Station.ID != curr.Station.ID
}
