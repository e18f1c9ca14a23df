package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/tessro/dial/internal/bus"
	"github.com/tessro/dial/internal/catalog"
	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
	"github.com/tessro/dial/internal/geo"
	"github.com/tessro/dial/internal/history"
	"github.com/tessro/dial/internal/logging"
	"github.com/tessro/dial/internal/recommend"
	"github.com/tessro/dial/internal/session"
	"github.com/tessro/dial/internal/sonos"
	"github.com/tessro/dial/internal/stream"
	"github.com/tessro/dial/internal/wizard"
)

// geocoderOpenTimeout is how long the reverse geocoder is skipped after
// repeated failures.
const geocoderOpenTimeout = time.Minute

func openCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Open(cfg.Catalog.File)
	if err != nil {
		return nil, dialerrors.WithSuggestion(err, "Check catalog.file in your config, or unset it to use the built-in stations")
	}
	return c, nil
}

func newRecommender(c *catalog.Catalog) *recommend.Recommender {
	loc := cfg.Location

	var locator core.Locator
	if loc.HasCoordinates() {
		locator = geo.Fixed(core.Coordinates{Lat: loc.Latitude, Lng: loc.Longitude})
	} else {
		locator = geo.NewIPAPI(loc.LocatorURL)
	}
	geocoder := geo.NewBreaker(geo.NewNominatim(loc.GeocoderURL, "dial/"+Version), geocoderOpenTimeout)

	return recommend.New(c,
		recommend.WithLocator(locator),
		recommend.WithGeocoder(geocoder),
		recommend.WithDefaultCountry(loc.DefaultCountry),
		recommend.WithTimeout(time.Duration(loc.DetectTimeout)*time.Second),
	)
}

// resolveCountry picks the country to recommend for: an explicit value,
// then the configured country, then detection when allowed, then the
// default.
func resolveCountry(ctx context.Context, rec *recommend.Recommender, explicit string, detect bool) string {
	if explicit != "" {
		return explicit
	}
	if cfg.Location.Country != "" {
		return cfg.Location.Country
	}
	if detect {
		return rec.DetectCountry(ctx)
	}
	return rec.DefaultCountry()
}

// room is a zone a session can play on.
type room struct {
	client *sonos.Client
	device *sonos.Device
	name   string
}

// findRoom resolves name (or the configured default room) to a zone
// coordinator. With neither set, a single zone is used as-is and several
// zones are offered in the room picker.
func findRoom(ctx context.Context, name string) (*room, error) {
	client := sonos.NewClient(time.Duration(cfg.Sonos.DiscoveryTimeout) * time.Second)

	seed, err := seedDevice(ctx, client)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = cfg.Sonos.DefaultRoom
	}
	if name != "" {
		dev, err := client.FindZone(ctx, seed, name)
		if err != nil {
			return nil, dialerrors.WithSuggestion(err, "Run 'dial rooms' to see the rooms on your network")
		}
		return &room{client: client, device: dev, name: name}, nil
	}

	zones, err := client.Zones(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if len(zones) == 0 {
		return &room{client: client, device: seed, name: seed.Name}, nil
	}

	choices := make([]core.Device, len(zones))
	for i, z := range zones {
		choices[i] = z.Coordinator.Core()
		choices[i].Name = z.Name
	}

	picked := wizard.OnlyRoom(choices)
	if picked == nil {
		w := wizard.NewInteractive()
		w.SetRooms(choices)
		picked, err = w.PromptRoom()
		if err != nil {
			return nil, err
		}
	}
	if picked == nil {
		return nil, dialerrors.WithSuggestion(
			fmt.Errorf("%w: several rooms found", dialerrors.ErrNoRenderer),
			"Pass --room, or set a default with 'dial config set-room'")
	}

	for _, z := range zones {
		if z.Name == picked.Name {
			return &room{client: client, device: z.Coordinator, name: z.Name}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", dialerrors.ErrNoRenderer, picked.Name)
}

// seedDevice returns a device to ask for the household topology: the
// configured host, or the first one discovery finds.
func seedDevice(ctx context.Context, client *sonos.Client) (*sonos.Device, error) {
	if cfg.Sonos.Host != "" {
		dev := sonos.DeviceAt(cfg.Sonos.Host, cfg.Sonos.Port)
		if name, err := client.GetZoneName(ctx, dev); err == nil && name != "" {
			dev.Name = name
		}
		return dev, nil
	}

	devices, err := client.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover speakers: %w", err)
	}
	if len(devices) == 0 {
		return nil, dialerrors.WithSuggestion(
			fmt.Errorf("%w: no Sonos speakers found", dialerrors.ErrNoRenderer),
			"Make sure your speakers are on this network, or set sonos.host in your config")
	}
	return devices[0], nil
}

func newRenderer(r *room) *sonos.Renderer {
	return sonos.NewRenderer(r.client, r.device,
		sonos.WithPollInterval(time.Duration(cfg.Sonos.PollInterval)*time.Millisecond),
		sonos.WithProber(stream.NewProber(10*time.Second)),
	)
}

// newSession builds a session from config. volume overrides the configured
// volume when in 0..100.
func newSession(provider core.ResourceProvider, volume int) *session.Session {
	if volume < 0 || volume > 100 {
		volume = cfg.Playback.Volume
	}
	return session.New(provider, bus.New[core.Snapshot](),
		session.WithVolume(float64(volume)/100),
		session.WithFallback(session.FallbackPolicy(cfg.Playback.Fallback), cfg.Playback.MaxAttempts),
		session.WithLoadTimeout(time.Duration(cfg.Playback.LoadTimeout)*time.Second),
	)
}

// openHistory opens the play history store, or returns nil when history is
// disabled or unavailable. A broken history never stops playback.
func openHistory() *history.Store {
	if cfg.History.Disabled {
		return nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logging.For("cli").WithError(err).Warn("play history unavailable")
		return nil
	}
	return store
}

// orderForCountry lists the country's stations first, best language match
// first, followed by everything else in catalog order.
func orderForCountry(c *catalog.Catalog, rec *recommend.Recommender, country string) []core.Station {
	first := rec.ForCountry(country)
	seen := make(map[string]bool, len(first))
	for _, st := range first {
		seen[st.ID] = true
	}
	out := first
	for _, st := range c.All() {
		if !seen[st.ID] {
			out = append(out, st)
		}
	}
	return out
}

// defaultRecorder records the session's plays into store. The returned
// func detaches it and closes the play in progress.
func defaultRecorder(store *history.Store, sess *session.Session) func() {
	recorder := history.NewRecorder(store, sess.ID())
	unsub := sess.Subscribe(recorder.Observe)
	return func() {
		unsub()
		recorder.Close()
	}
}
