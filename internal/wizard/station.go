package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/tessro/dial/internal/core"
)

// StationLabel is the one-line description of a station used in pickers.
func StationLabel(st core.Station) string {
	var meta []string
	for _, s := range []string{st.Language, st.Genre} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	if len(meta) == 0 {
		return st.Name
	}
	return fmt.Sprintf("%s (%s)", st.Name, strings.Join(meta, ", "))
}

// StationOptions builds select options keyed by station ID.
func StationOptions(stations []core.Station) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(stations))
	for _, st := range stations {
		options = append(options, huh.NewOption(StationLabel(st), st.ID))
	}
	return options
}

// SelectStation asks the user to pick one of stations. It returns nil if
// there is nothing to pick from.
func SelectStation(title, description string, stations []core.Station) (*core.Station, error) {
	if len(stations) == 0 {
		return nil, nil
	}

	var selectedID string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description(description).
				Options(StationOptions(stations)...).
				Height(12).
				Value(&selectedID),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	for i := range stations {
		if stations[i].ID == selectedID {
			return &stations[i], nil
		}
	}
	return nil, nil
}
