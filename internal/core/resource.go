package core

import "context"

// ResourceEventType identifies an asynchronous completion fired by a Resource.
type ResourceEventType string

const (
	EventReady     ResourceEventType = "ready"
	EventPlaying   ResourceEventType = "playing"
	EventPaused    ResourceEventType = "paused"
	EventStopped   ResourceEventType = "stopped"
	EventLoadError ResourceEventType = "load_error"
)

// ResourceEvent is delivered by a Resource through the emit callback it was
// acquired with. Err is set for EventLoadError.
type ResourceEvent struct {
	Type ResourceEventType
	Err  error
}

// AcquireRequest describes the stream a new Resource is bound to.
type AcquireRequest struct {
	Station Station
	URL     string
	Format  string
	Volume  float64
}

// Resource is the audio rendering handle owned by a playback session.
// Methods must not block on the network for long; completions are reported
// asynchronously through the emit callback given to Acquire.
type Resource interface {
	// Load starts resolving the stream. EventReady or EventLoadError follows.
	Load(ctx context.Context)
	Play()
	Pause()
	Stop()
	// Unload releases the handle. No events may be emitted afterwards.
	Unload()
	SetVolume(v float64)
	IsPlaying() bool
}

// ResourceProvider constructs resources. An error means the resource could
// not even be constructed; stream failures are reported as EventLoadError.
type ResourceProvider interface {
	Acquire(req AcquireRequest, emit func(ResourceEvent)) (Resource, error)
}
