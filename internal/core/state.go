package core

import "time"

// StateKind names a session state for logging and serialization.
type StateKind string

const (
	StateIdle    StateKind = "idle"
	StateLoading StateKind = "loading"
	StateReady   StateKind = "ready"
	StatePlaying StateKind = "playing"
	StatePaused  StateKind = "paused"
	StateFailed  StateKind = "failed"
)

// State is the playback session state. The concrete variants are Idle,
// Loading, Ready, Playing, Paused and Failed; no other type implements it.
type State interface {
	Kind() StateKind
	state()
}

// Idle means no station and no resource.
type Idle struct{}

// Loading means a resource was requested and is not yet ready.
type Loading struct{ Station Station }

// Ready means the resource buffered enough to start and a play command was
// issued, but rendering is not yet confirmed.
type Ready struct{ Station Station }

// Playing means audio is actively rendering.
type Playing struct{ Station Station }

// Paused means the resource is retained but not rendering.
type Paused struct{ Station Station }

// Failed means a resource could not even be constructed.
type Failed struct{ Err error }

func (Idle) Kind() StateKind    { return StateIdle }
func (Loading) Kind() StateKind { return StateLoading }
func (Ready) Kind() StateKind   { return StateReady }
func (Playing) Kind() StateKind { return StatePlaying }
func (Paused) Kind() StateKind  { return StatePaused }
func (Failed) Kind() StateKind  { return StateFailed }

func (Idle) state()    {}
func (Loading) state() {}
func (Ready) state()   {}
func (Playing) state() {}
func (Paused) state()  {}
func (Failed) state()  {}

// StationOf returns the station associated with a state, or nil.
func StationOf(s State) *Station {
	switch v := s.(type) {
	case Loading:
		return &v.Station
	case Ready:
		return &v.Station
	case Playing:
		return &v.Station
	case Paused:
		return &v.Station
	}
	return nil
}

// Snapshot is an immutable description of playback state broadcast to observers.
type Snapshot struct {
	State     StateKind `json:"state"`
	IsPlaying bool      `json:"is_playing"`
	IsLoading bool      `json:"is_loading"`
	Station   *Station  `json:"station"`
	Volume    float64   `json:"volume"`
	Err       error     `json:"-"`
	Error     string    `json:"error,omitempty"`
	At        time.Time `json:"at"`
}

// SnapshotOf derives the snapshot for a state. Playing and loading are
// mutually exclusive by construction.
func SnapshotOf(s State, volume float64) Snapshot {
	if s == nil {
		s = Idle{}
	}
	snap := Snapshot{
		State:   s.Kind(),
		Station: StationOf(s),
		Volume:  volume,
		At:      time.Now(),
	}
	switch v := s.(type) {
	case Loading:
		snap.IsLoading = true
	case Playing:
		snap.IsPlaying = true
	case Failed:
		snap.Err = v.Err
		if v.Err != nil {
			snap.Error = v.Err.Error()
		}
	}
	return snap
}

// HasStation returns true if a station is associated with the snapshot.
func (s *Snapshot) HasStation() bool {
	return s != nil && s.Station != nil
}

// VolumePercent returns the volume as an integer percentage (0-100).
func (s *Snapshot) VolumePercent() int {
	if s == nil {
		return 0
	}
	return PercentOf(s.Volume)
}

// ClampVolume clamps v to [0, 1].
func ClampVolume(v float64) float64 {
	if v != v { // NaN
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PercentOf converts a normalized volume to a rounded percentage.
func PercentOf(v float64) int {
	return int(ClampVolume(v)*100 + 0.5)
}
