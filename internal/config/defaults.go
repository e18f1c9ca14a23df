package config

import (
	"os"
	"path/filepath"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Sonos: SonosConfig{
			Port:             1400,
			DiscoveryTimeout: 3,
			PollInterval:     1000,
		},
		Playback: PlaybackConfig{
			Volume:      50,
			Fallback:    "none",
			MaxAttempts: 3,
			LoadTimeout: 15,
		},
		Location: LocationConfig{
			DefaultCountry: "India",
			DetectTimeout:  5,
			LocatorURL:     "http://ip-api.com/json",
			GeocoderURL:    "https://nominatim.openstreetmap.org/reverse",
		},
		History: HistoryConfig{
			Path: defaultHistoryPath(),
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Sonos
	if c.Sonos.Port == 0 {
		c.Sonos.Port = d.Sonos.Port
	}
	if c.Sonos.DiscoveryTimeout == 0 {
		c.Sonos.DiscoveryTimeout = d.Sonos.DiscoveryTimeout
	}
	if c.Sonos.PollInterval == 0 {
		c.Sonos.PollInterval = d.Sonos.PollInterval
	}

	// Playback
	if c.Playback.Volume == 0 {
		c.Playback.Volume = d.Playback.Volume
	}
	if c.Playback.Fallback == "" {
		c.Playback.Fallback = d.Playback.Fallback
	}
	if c.Playback.MaxAttempts == 0 {
		c.Playback.MaxAttempts = d.Playback.MaxAttempts
	}
	if c.Playback.LoadTimeout == 0 {
		c.Playback.LoadTimeout = d.Playback.LoadTimeout
	}

	// Location
	if c.Location.DefaultCountry == "" {
		c.Location.DefaultCountry = d.Location.DefaultCountry
	}
	if c.Location.DetectTimeout == 0 {
		c.Location.DetectTimeout = d.Location.DetectTimeout
	}
	if c.Location.LocatorURL == "" {
		c.Location.LocatorURL = d.Location.LocatorURL
	}
	if c.Location.GeocoderURL == "" {
		c.Location.GeocoderURL = d.Location.GeocoderURL
	}

	// History
	if c.History.Path == "" {
		c.History.Path = d.History.Path
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// defaultHistoryPath returns $XDG_DATA_HOME/dial/history.db or ~/.local/share/dial/history.db.
func defaultHistoryPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "history.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "dial", "history.db")
}
