// Package geo implements the geolocation and reverse geocoding
// collaborators used for country detection.
package geo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
)

// DefaultIPAPIURL is the free ip-api.com endpoint. It locates the caller
// by the address the request comes from.
const DefaultIPAPIURL = "http://ip-api.com/json"

// IPAPI locates the caller through ip-api.com.
// The free tier allows 45 requests per minute.
type IPAPI struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

type ipAPIResponse struct {
	Status  string  `json:"status"`  // "success" or "fail"
	Message string  `json:"message"` // set when status is "fail"
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// NewIPAPI creates an ip-api.com locator. An empty baseURL uses
// DefaultIPAPIURL.
func NewIPAPI(baseURL string) *IPAPI {
	if baseURL == "" {
		baseURL = DefaultIPAPIURL
	}
	return &IPAPI{
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Minute/45), 1),
		baseURL: baseURL,
	}
}

// Locate returns the approximate coordinates of the caller.
func (p *IPAPI) Locate(ctx context.Context) (core.Coordinates, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return core.Coordinates{}, fmt.Errorf("ip-api rate limit: %w", err)
	}

	url := p.baseURL + "?fields=status,message,country,lat,lon"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.Coordinates{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return core.Coordinates{}, fmt.Errorf("%w: %w", dialerrors.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.Coordinates{}, fmt.Errorf("ip-api returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return core.Coordinates{}, fmt.Errorf("decode ip-api response: %w", err)
	}
	if result.Status != "success" {
		return core.Coordinates{}, fmt.Errorf("%w: ip-api: %s", dialerrors.ErrLocationUnavailable, result.Message)
	}

	return core.Coordinates{Lat: result.Lat, Lng: result.Lon}, nil
}

// Fixed is a Locator that always returns the configured coordinates.
type Fixed core.Coordinates

// Locate returns f.
func (f Fixed) Locate(ctx context.Context) (core.Coordinates, error) {
	return core.Coordinates(f), nil
}
