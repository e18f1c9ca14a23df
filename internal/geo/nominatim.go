package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
)

// DefaultNominatimURL is the OpenStreetMap reverse geocoding endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org/reverse"

// Nominatim resolves coordinates to an English country name.
// The public instance allows one request per second and requires an
// identifying User-Agent.
type Nominatim struct {
	client    *http.Client
	limiter   *rate.Limiter
	baseURL   string
	userAgent string
}

type nominatimResponse struct {
	Error   string `json:"error"`
	Address struct {
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// NewNominatim creates a reverse geocoder. An empty baseURL uses
// DefaultNominatimURL.
func NewNominatim(baseURL, userAgent string) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if userAgent == "" {
		userAgent = "dial"
	}
	return &Nominatim{
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// Country returns the name of the country containing c.
func (n *Nominatim) Country(ctx context.Context, c core.Coordinates) (string, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("nominatim rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(c.Lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(c.Lng, 'f', 6, 64))
	q.Set("zoom", "3")
	q.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", dialerrors.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode nominatim response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("%w: nominatim: %s", dialerrors.ErrLocationUnavailable, result.Error)
	}
	if result.Address.Country == "" {
		return "", fmt.Errorf("%w: no country at %.4f,%.4f", dialerrors.ErrLocationUnavailable, c.Lat, c.Lng)
	}

	return result.Address.Country, nil
}
