// Package recommend narrows the station catalog by the listener's country
// and language.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tessro/dial/internal/catalog"
	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
	"github.com/tessro/dial/internal/logging"
)

const (
	// DefaultCountry is used whenever the listener's country can't be detected.
	DefaultCountry = "India"
	// DefaultTimeout bounds DetectCountry.
	DefaultTimeout = 5 * time.Second
)

// Recommender answers country and language questions over a catalog.
type Recommender struct {
	catalog        *catalog.Catalog
	locator        core.Locator
	geocoder       core.Geocoder
	defaultCountry string
	timeout        time.Duration
	log            *log.Entry
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithLocator sets the geolocation collaborator.
func WithLocator(l core.Locator) Option {
	return func(r *Recommender) { r.locator = l }
}

// WithGeocoder sets the reverse geocoding collaborator.
func WithGeocoder(g core.Geocoder) Option {
	return func(r *Recommender) { r.geocoder = g }
}

// WithDefaultCountry overrides DefaultCountry.
func WithDefaultCountry(country string) Option {
	return func(r *Recommender) {
		if country != "" {
			r.defaultCountry = country
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Recommender) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// New creates a Recommender over c.
func New(c *catalog.Catalog, opts ...Option) *Recommender {
	r := &Recommender{
		catalog:        c,
		defaultCountry: DefaultCountry,
		timeout:        DefaultTimeout,
		log:            logging.For("recommend"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultCountry returns the country used when detection fails.
func (r *Recommender) DefaultCountry() string {
	return r.defaultCountry
}

// PreferredLanguages is the package-level PreferredLanguages.
func (r *Recommender) PreferredLanguages(country string) []string {
	return PreferredLanguages(country)
}

// DetectCountry locates the caller and reverse-geocodes the position. Any
// failure, including running past the timeout, yields the default country.
func (r *Recommender) DetectCountry(ctx context.Context) string {
	country, err := r.detect(ctx)
	if err != nil {
		r.log.WithError(err).Debugf("country detection failed, using %s", r.defaultCountry)
		return r.defaultCountry
	}
	r.log.WithField("country", country).Debug("detected country")
	return country
}

func (r *Recommender) detect(ctx context.Context) (string, error) {
	if r.locator == nil || r.geocoder == nil {
		return "", fmt.Errorf("%w: no locator configured", dialerrors.ErrLocationUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		country string
		err     error
	}
	done := make(chan result, 1)

	// Collaborators that ignore ctx must not hold us past the deadline.
	go func() {
		coords, err := r.locator.Locate(ctx)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %w", dialerrors.ErrLocationUnavailable, err)}
			return
		}
		country, err := r.geocoder.Country(ctx, coords)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %w", dialerrors.ErrLocationUnavailable, err)}
			return
		}
		if strings.TrimSpace(country) == "" {
			done <- result{err: fmt.Errorf("%w: empty country", dialerrors.ErrLocationUnavailable)}
			return
		}
		done <- result{country: strings.TrimSpace(country)}
	}()

	select {
	case res := <-done:
		return res.country, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", dialerrors.ErrTimeout, ctx.Err())
	}
}

// Recommend returns the stations whose country and language equal the given
// values, ignoring case. An empty argument does not filter; with both empty
// the whole catalog is returned.
func (r *Recommender) Recommend(country, language string) []core.Station {
	return r.catalog.Filter(func(s core.Station) bool {
		if country != "" && !strings.EqualFold(s.Country, country) {
			return false
		}
		if language != "" && !strings.EqualFold(s.Language, language) {
			return false
		}
		return true
	})
}

// ForCountry returns the stations of country ordered by how preferred their
// language is there. Stations in unlisted languages come last. Ties keep
// catalog order.
func (r *Recommender) ForCountry(country string) []core.Station {
	stations := r.Recommend(country, "")
	langs := PreferredLanguages(country)

	rank := make(map[string]int, len(langs))
	for i, l := range langs {
		rank[strings.ToLower(l)] = i
	}
	rankOf := func(s core.Station) int {
		if i, ok := rank[strings.ToLower(s.Language)]; ok {
			return i
		}
		return len(langs)
	}

	sort.SliceStable(stations, func(i, j int) bool {
		return rankOf(stations[i]) < rankOf(stations[j])
	})
	return stations
}
