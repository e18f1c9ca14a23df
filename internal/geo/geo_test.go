package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
)

func TestIPAPILocate(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    core.Coordinates
		wantErr bool
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"status":"success","country":"India","lat":19.076,"lon":72.8777}`,
			want:   core.Coordinates{Lat: 19.076, Lng: 72.8777},
		},
		{
			name:    "fail status",
			status:  http.StatusOK,
			body:    `{"status":"fail","message":"reserved range"}`,
			wantErr: true,
		},
		{
			name:    "http error",
			status:  http.StatusTooManyRequests,
			body:    ``,
			wantErr: true,
		},
		{
			name:    "malformed",
			status:  http.StatusOK,
			body:    `{"status":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("fields") == "" {
					t.Error("missing fields parameter")
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewIPAPI(srv.URL).Locate(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Locate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Locate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFixed(t *testing.T) {
	f := Fixed{Lat: 1.5, Lng: 2.5}
	got, err := f.Locate(context.Background())
	if err != nil || got != (core.Coordinates{Lat: 1.5, Lng: 2.5}) {
		t.Errorf("Locate() = %+v, %v", got, err)
	}
}

func TestNominatimCountry(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr error
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"address":{"country":"India","country_code":"in"}}`,
			want:   "India",
		},
		{
			name:    "unable to geocode",
			status:  http.StatusOK,
			body:    `{"error":"Unable to geocode"}`,
			wantErr: dialerrors.ErrLocationUnavailable,
		},
		{
			name:    "no country",
			status:  http.StatusOK,
			body:    `{"address":{}}`,
			wantErr: dialerrors.ErrLocationUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("accept-language") != "en" {
					t.Errorf("accept-language = %q, want en", q.Get("accept-language"))
				}
				if q.Get("lat") != "19.076000" || q.Get("lon") != "72.877700" {
					t.Errorf("lat/lon = %s/%s", q.Get("lat"), q.Get("lon"))
				}
				if r.Header.Get("User-Agent") != "dial-test" {
					t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			n := NewNominatim(srv.URL, "dial-test")
			got, err := n.Country(context.Background(), core.Coordinates{Lat: 19.076, Lng: 72.8777})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Country() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Country() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Country() = %q, want %q", got, tt.want)
			}
		})
	}
}

type countingGeocoder struct {
	calls int
	err   error
}

func (g *countingGeocoder) Country(ctx context.Context, c core.Coordinates) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return "France", nil
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("boom")}
	b := NewBreaker(inner, time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := b.Country(context.Background(), core.Coordinates{}); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	_, err := b.Country(context.Background(), core.Coordinates{})
	if !errors.Is(err, dialerrors.ErrLocationUnavailable) {
		t.Errorf("open breaker error = %v, want ErrLocationUnavailable", err)
	}
	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3", inner.calls)
	}
}

func TestBreakerPassesThrough(t *testing.T) {
	inner := &countingGeocoder{}
	b := NewBreaker(inner, 0)

	got, err := b.Country(context.Background(), core.Coordinates{})
	if err != nil || got != "France" {
		t.Errorf("Country() = %q, %v", got, err)
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}
