package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
	"github.com/tessro/dial/internal/logging"
)

// Breaker wraps a Geocoder with a circuit breaker so a failing service is
// not hit on every detection. After three consecutive failures it rejects
// calls for the open timeout, then lets a single probe through.
type Breaker struct {
	geocoder core.Geocoder
	cb       *gobreaker.CircuitBreaker[string]
}

// NewBreaker wraps g. A zero openTimeout uses one minute.
func NewBreaker(g core.Geocoder, openTimeout time.Duration) *Breaker {
	if openTimeout <= 0 {
		openTimeout = time.Minute
	}
	logger := logging.For("geo")

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithField("breaker", name).Infof("circuit %s -> %s", from, to)
		},
	})

	return &Breaker{geocoder: g, cb: cb}
}

// Country calls the wrapped geocoder unless the circuit is open.
func (b *Breaker) Country(ctx context.Context, c core.Coordinates) (string, error) {
	country, err := b.cb.Execute(func() (string, error) {
		return b.geocoder.Country(ctx, c)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: geocoder circuit open", dialerrors.ErrLocationUnavailable)
	}
	return country, err
}

// State returns the breaker state, for diagnostics.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
