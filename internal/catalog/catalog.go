// Package catalog holds the read-only station table and its queries.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
)

// Catalog is an immutable, ordered set of stations keyed by ID.
type Catalog struct {
	stations []core.Station
	index    map[string]int
}

// New builds a catalog, preserving registration order. IDs must be unique
// and every station needs an ID and a stream URL.
func New(stations []core.Station) (*Catalog, error) {
	c := &Catalog{
		stations: make([]core.Station, 0, len(stations)),
		index:    make(map[string]int, len(stations)),
	}

	for _, s := range stations {
		if s.ID == "" || s.StreamURL == "" {
			return nil, fmt.Errorf("%w: %q needs an id and a stream_url", dialerrors.ErrInvalidStation, s.Name)
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("%w: %s", dialerrors.ErrDuplicateStation, s.ID)
		}
		s.FallbackURLs = append([]string(nil), s.FallbackURLs...)
		c.index[s.ID] = len(c.stations)
		c.stations = append(c.stations, s)
	}

	return c, nil
}

// Default returns the catalog of built-in stations.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in table: %v", err))
	}
	return c
}

// Merge returns base followed by extra. An extra station whose ID already
// exists in base replaces it in place.
func Merge(base, extra []core.Station) []core.Station {
	out := append([]core.Station(nil), base...)
	pos := make(map[string]int, len(out))
	for i, s := range out {
		pos[s.ID] = i
	}
	for _, s := range extra {
		if i, ok := pos[s.ID]; ok {
			out[i] = s
			continue
		}
		pos[s.ID] = len(out)
		out = append(out, s)
	}
	return out
}

// Len returns the number of stations.
func (c *Catalog) Len() int {
	return len(c.stations)
}

// All returns every station in registration order.
func (c *Catalog) All() []core.Station {
	return c.filter(func(core.Station) bool { return true })
}

// ByID returns the station with the given ID. Absence is not an error.
func (c *Catalog) ByID(id string) (core.Station, bool) {
	i, ok := c.index[id]
	if !ok {
		return core.Station{}, false
	}
	return c.copyOf(i), true
}

// Lookup is ByID with an error suitable for returning to a caller.
func (c *Catalog) Lookup(id string) (core.Station, error) {
	s, ok := c.ByID(id)
	if !ok {
		return core.Station{}, fmt.Errorf("%w: %s", dialerrors.ErrStationNotFound, id)
	}
	return s, nil
}

// ByGenre returns stations whose genre contains text, ignoring case.
func (c *Catalog) ByGenre(text string) []core.Station {
	return c.contains(text, func(s core.Station) string { return s.Genre })
}

// ByLanguage returns stations whose language contains text, ignoring case.
func (c *Catalog) ByLanguage(text string) []core.Station {
	return c.contains(text, func(s core.Station) string { return s.Language })
}

// ByCountry returns stations whose country contains text, ignoring case.
// This is a loose filter: "India" also matches "Indiana".
func (c *Catalog) ByCountry(text string) []core.Station {
	return c.contains(text, func(s core.Station) string { return s.Country })
}

// Search returns stations whose name, description or genre contains text.
func (c *Catalog) Search(text string) []core.Station {
	needle := strings.ToLower(text)
	return c.filter(func(s core.Station) bool {
		return strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(s.Description), needle) ||
			strings.Contains(strings.ToLower(s.Genre), needle)
	})
}

// DistinctCountries returns the sorted set of countries.
func (c *Catalog) DistinctCountries() []string {
	return c.distinct(func(s core.Station) string { return s.Country })
}

// DistinctLanguages returns the sorted set of languages.
func (c *Catalog) DistinctLanguages() []string {
	return c.distinct(func(s core.Station) string { return s.Language })
}

// DistinctGenres returns the sorted set of genres.
func (c *Catalog) DistinctGenres() []string {
	return c.distinct(func(s core.Station) string { return s.Genre })
}

// Filter returns stations matching keep, in catalog order.
func (c *Catalog) Filter(keep func(core.Station) bool) []core.Station {
	return c.filter(keep)
}

func (c *Catalog) contains(text string, field func(core.Station) string) []core.Station {
	needle := strings.ToLower(text)
	return c.filter(func(s core.Station) bool {
		return strings.Contains(strings.ToLower(field(s)), needle)
	})
}

func (c *Catalog) filter(keep func(core.Station) bool) []core.Station {
	out := make([]core.Station, 0)
	for i, s := range c.stations {
		if keep(s) {
			out = append(out, c.copyOf(i))
		}
	}
	return out
}

func (c *Catalog) distinct(field func(core.Station) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range c.stations {
		v := field(s)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// copyOf returns a station whose slices do not alias the table.
func (c *Catalog) copyOf(i int) core.Station {
	s := c.stations[i]
	s.FallbackURLs = append([]string(nil), s.FallbackURLs...)
	return s
}
