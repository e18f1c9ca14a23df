package sonos

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
	"github.com/tessro/dial/internal/logging"
	"github.com/tessro/dial/internal/stream"
)

// Prober checks a stream before the player is pointed at it.
type Prober interface {
	Probe(ctx context.Context, url, format string) (stream.Info, error)
}

// unloadWait bounds how long Unload waits for queued commands to reach the
// player.
const unloadWait = 3 * time.Second

// Renderer plays stations on one Sonos zone. It implements
// core.ResourceProvider; each acquired resource takes over the zone's
// transport until it is unloaded.
type Renderer struct {
	client *Client
	device *Device
	prober Prober
	poll   time.Duration
	// stoppedPolls is how many consecutive STOPPED reports after a play
	// command count as the stream having failed or ended.
	stoppedPolls int
	log          *log.Entry
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithPollInterval sets how often the transport state is polled.
func WithPollInterval(d time.Duration) RendererOption {
	return func(r *Renderer) {
		if d > 0 {
			r.poll = d
		}
	}
}

// WithProber replaces the default stream prober.
func WithProber(p Prober) RendererOption {
	return func(r *Renderer) { r.prober = p }
}

// NewRenderer creates a renderer for device, which must be a zone
// coordinator.
func NewRenderer(client *Client, device *Device, opts ...RendererOption) *Renderer {
	r := &Renderer{
		client:       client,
		device:       device,
		prober:       stream.NewProber(10 * time.Second),
		poll:         time.Second,
		stoppedPolls: 3,
		log:          logging.For("sonos"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if device != nil {
		r.log = r.log.WithField("zone", device.Name)
	}
	return r
}

// Acquire binds a new resource to req. It fails only when the request can't
// be played at all; stream problems surface later as EventLoadError.
func (r *Renderer) Acquire(req core.AcquireRequest, emit func(core.ResourceEvent)) (core.Resource, error) {
	if r.device == nil {
		return nil, dialerrors.ErrNoRenderer
	}
	uri, err := RadioURI(req.URL, req.Format)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	res := &resource{
		r:        r,
		req:      req,
		uri:      uri,
		meta:     RadioMetadata(req.Station),
		emitFn:   emit,
		ctx:      ctx,
		cancel:   cancel,
		volume:   req.Volume,
		commands: newSerial(),
		log:      r.log.WithField("station", req.Station.ID),
	}
	return res, nil
}

// resource is one station bound to the zone's transport. Commands run in
// order on a private goroutine so callers never wait on the network.
type resource struct {
	r      *Renderer
	req    core.AcquireRequest
	uri    string
	meta   string
	emitFn func(core.ResourceEvent)
	ctx    context.Context
	cancel context.CancelFunc
	log    *log.Entry

	commands *serial

	mu          sync.Mutex
	volume      float64
	playing     bool
	ready       bool
	playAsked   bool
	everPlayed  bool
	stopAsked   bool
	unloaded    bool
	lastState   string
	stoppedSeen int
	// epoch counts transport commands that completed. A poll that started
	// before one of them is discarded.
	epoch uint64
}

func (res *resource) emit(ev core.ResourceEvent) {
	res.mu.Lock()
	gone := res.unloaded
	res.mu.Unlock()
	if gone {
		return
	}
	res.emitFn(ev)
}

func (res *resource) Load(ctx context.Context) {
	res.commands.do(func() {
		if err := res.load(ctx); err != nil {
			res.log.WithError(err).Debug("load failed")
			res.emit(core.ResourceEvent{Type: core.EventLoadError, Err: err})
			return
		}
		res.mu.Lock()
		res.ready = true
		res.mu.Unlock()
		res.emit(core.ResourceEvent{Type: core.EventReady})
		go res.watch()
	})
}

func (res *resource) load(ctx context.Context) error {
	ctx, cancel := mergeCancel(ctx, res.ctx)
	defer cancel()

	info, err := res.r.prober.Probe(ctx, res.req.URL, res.req.Format)
	if err != nil {
		return err
	}
	res.log.WithFields(log.Fields{"content_type": info.ContentType, "icy_name": info.Name}).Debug("stream probed")

	dev := res.r.device
	if err := res.r.client.SetAVTransportURI(ctx, dev, res.uri, res.meta); err != nil {
		return fmt.Errorf("%w: set transport uri: %w", dialerrors.ErrStreamUnreachable, err)
	}

	res.mu.Lock()
	vol := res.volume
	res.mu.Unlock()
	if err := res.r.client.SetVolume(ctx, dev, core.PercentOf(vol)); err != nil {
		res.log.WithError(err).Warn("set volume failed")
	}
	return nil
}

func (res *resource) Play() {
	res.commands.do(func() {
		if err := res.r.client.Play(res.ctx, res.r.device); err != nil {
			res.log.WithError(err).Warn("play failed")
			return
		}
		// STOPPED only means failure once the player has accepted Play.
		res.mu.Lock()
		res.playAsked = true
		res.stoppedSeen = 0
		res.commandDone()
		res.mu.Unlock()
	})
}

func (res *resource) Pause() {
	res.mu.Lock()
	res.playAsked = false
	res.playing = false
	res.mu.Unlock()

	res.commands.do(func() {
		if err := res.r.client.Pause(res.ctx, res.r.device); err != nil {
			res.log.WithError(err).Warn("pause failed")
			return
		}
		res.mu.Lock()
		res.commandDone()
		res.mu.Unlock()
	})
}

// commandDone forgets the last polled state so the next poll reports the
// transport as it is now, even if it reads the same as before the command.
// res.mu must be held.
func (res *resource) commandDone() {
	res.epoch++
	res.lastState = ""
}

func (res *resource) Stop() {
	res.mu.Lock()
	res.stopAsked = true
	res.playAsked = false
	res.playing = false
	res.mu.Unlock()

	res.commands.do(func() {
		if err := res.r.client.Stop(res.ctx, res.r.device); err != nil {
			res.log.WithError(err).Debug("stop failed")
		}
	})
}

// Unload silences the resource at once and waits, up to unloadWait, for
// the commands already queued to be sent, so the next resource on the zone
// starts after them.
func (res *resource) Unload() {
	res.mu.Lock()
	if res.unloaded {
		res.mu.Unlock()
		return
	}
	res.unloaded = true
	res.mu.Unlock()

	res.commands.do(res.cancel)
	res.commands.close()
	if !res.commands.wait(unloadWait) {
		res.log.Warn("queued commands still running after unload")
		res.cancel()
	}
}

func (res *resource) SetVolume(v float64) {
	res.mu.Lock()
	res.volume = v
	ready := res.ready
	res.mu.Unlock()

	if !ready {
		return // applied by load
	}
	res.commands.do(func() {
		if err := res.r.client.SetVolume(res.ctx, res.r.device, core.PercentOf(v)); err != nil {
			res.log.WithError(err).Warn("set volume failed")
		}
	})
}

func (res *resource) IsPlaying() bool {
	res.mu.Lock()
	defer res.mu.Unlock()
	return res.playing
}

// watch polls the transport and reports changes until the resource is
// unloaded.
func (res *resource) watch() {
	ticker := time.NewTicker(res.r.poll)
	defer ticker.Stop()

	for {
		select {
		case <-res.ctx.Done():
			return
		case <-ticker.C:
		}

		res.mu.Lock()
		epoch := res.epoch
		res.mu.Unlock()

		info, err := res.r.client.GetTransportInfo(res.ctx, res.r.device)
		if err != nil {
			if res.ctx.Err() == nil {
				res.log.WithError(err).Debug("transport poll failed")
			}
			continue
		}
		if ev, ok := res.observe(info.CurrentTransportState, epoch); ok {
			res.emit(ev)
			if ev.Type == core.EventStopped || ev.Type == core.EventLoadError {
				return
			}
		}
	}
}

// observe folds one transport state, polled during epoch, into the
// resource and returns the event to report, if any.
func (res *resource) observe(state string, epoch uint64) (core.ResourceEvent, bool) {
	res.mu.Lock()
	defer res.mu.Unlock()

	if epoch != res.epoch {
		return core.ResourceEvent{}, false
	}

	changed := state != res.lastState
	res.lastState = state

	switch state {
	case StatePlaying:
		res.stoppedSeen = 0
		res.playing = true
		res.everPlayed = true
		if changed {
			return core.ResourceEvent{Type: core.EventPlaying}, true
		}
	case StatePausedPlayback:
		res.playing = false
		if changed && res.everPlayed {
			return core.ResourceEvent{Type: core.EventPaused}, true
		}
	case StateStopped:
		res.playing = false
		if res.stopAsked || !res.playAsked {
			return core.ResourceEvent{}, false
		}
		res.stoppedSeen++
		if res.stoppedSeen < res.r.stoppedPolls {
			return core.ResourceEvent{}, false
		}
		if !res.everPlayed {
			return core.ResourceEvent{
				Type: core.EventLoadError,
				Err:  fmt.Errorf("%w: player stopped before the stream started", dialerrors.ErrStreamUnreachable),
			}, true
		}
		return core.ResourceEvent{Type: core.EventStopped}, true
	}
	return core.ResourceEvent{}, false
}

// mergeCancel returns a context that ends when either parent does.
func mergeCancel(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

var _ core.ResourceProvider = (*Renderer)(nil)
