package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.dialrc, $XDG_CONFIG_HOME/dial/config.toml, ~/.config/dial/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := FindConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the configuration as TOML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	enc.Indent = "  "
	return enc.Encode(cfg)
}

// FindConfigFile returns the first existing config file path.
func FindConfigFile() string {
	for _, p := range candidatePaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath returns the preferred location for a new config file.
func DefaultPath() string {
	paths := candidatePaths()
	if len(paths) == 0 {
		return "config.toml"
	}
	return paths[len(paths)-1]
}

func candidatePaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	paths := []string{
		filepath.Join(home, ".dialrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return append(paths, filepath.Join(xdgConfig, "dial", "config.toml"))
}

// applyEnvOverrides applies environment variable overrides to the config.
// A .env file in the working directory is read first; it never overrides
// variables already set in the environment.
func applyEnvOverrides(cfg *Config) {
	_ = godotenv.Load()

	// Sonos
	if v := os.Getenv("DIAL_SONOS_DEFAULT_ROOM"); v != "" {
		cfg.Sonos.DefaultRoom = v
	}
	if v := os.Getenv("DIAL_SONOS_HOST"); v != "" {
		cfg.Sonos.Host = v
	}
	if v := os.Getenv("DIAL_SONOS_DISCOVERY_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Sonos.DiscoveryTimeout = i
		}
	}

	// Playback
	if v := os.Getenv("DIAL_PLAYBACK_VOLUME"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.Volume = i
		}
	}
	if v := os.Getenv("DIAL_PLAYBACK_FALLBACK"); v != "" {
		cfg.Playback.Fallback = strings.ToLower(v)
	}

	// Location
	if v := os.Getenv("DIAL_LOCATION_COUNTRY"); v != "" {
		cfg.Location.Country = v
	}
	if v := os.Getenv("DIAL_LOCATION_DEFAULT_COUNTRY"); v != "" {
		cfg.Location.DefaultCountry = v
	}

	// Catalog
	if v := os.Getenv("DIAL_CATALOG_FILE"); v != "" {
		cfg.Catalog.File = v
	}

	// History
	if v := os.Getenv("DIAL_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("DIAL_HISTORY_DISABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.History.Disabled = b
		}
	}

	// TUI
	if v := os.Getenv("DIAL_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}

	// Log
	if v := os.Getenv("DIAL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DIAL_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
