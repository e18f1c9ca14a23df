package core

import "context"

// Coordinates is a best-effort position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Locator resolves the caller's approximate position.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Geocoder reverse-resolves coordinates to a country name.
type Geocoder interface {
	Country(ctx context.Context, c Coordinates) (string, error)
}
