package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dialerrors "github.com/tessro/dial/internal/errors"
)

func TestLoadFrom(t *testing.T) {
	content := `
[sonos]
default_room = "Kitchen"

[playback]
volume = 30
fallback = "ordered"
max_attempts = 2

[location]
country = "India"

[catalog]
file = "/tmp/stations.toml"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Sonos.DefaultRoom != "Kitchen" {
		t.Errorf("Sonos.DefaultRoom = %q, want %q", cfg.Sonos.DefaultRoom, "Kitchen")
	}
	if cfg.Sonos.Port != 1400 {
		t.Errorf("Sonos.Port = %d, want default 1400", cfg.Sonos.Port)
	}
	if cfg.Playback.Volume != 30 {
		t.Errorf("Playback.Volume = %d, want 30", cfg.Playback.Volume)
	}
	if cfg.Playback.Fallback != "ordered" {
		t.Errorf("Playback.Fallback = %q, want %q", cfg.Playback.Fallback, "ordered")
	}
	if cfg.Location.DefaultCountry != "India" {
		t.Errorf("Location.DefaultCountry = %q, want %q", cfg.Location.DefaultCountry, "India")
	}
	if cfg.Catalog.File != "/tmp/stations.toml" {
		t.Errorf("Catalog.File = %q", cfg.Catalog.File)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DIAL_SONOS_DEFAULT_ROOM", "Office")
	t.Setenv("DIAL_PLAYBACK_VOLUME", "75")
	t.Setenv("DIAL_HISTORY_DISABLED", "true")
	t.Setenv("DIAL_LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[sonos]\ndefault_room = \"Kitchen\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Sonos.DefaultRoom != "Office" {
		t.Errorf("Sonos.DefaultRoom = %q, want %q", cfg.Sonos.DefaultRoom, "Office")
	}
	if cfg.Playback.Volume != 75 {
		t.Errorf("Playback.Volume = %d, want 75", cfg.Playback.Volume)
	}
	if !cfg.History.Disabled {
		t.Error("History.Disabled = false, want true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"volume", func(c *Config) { c.Playback.Volume = 101 }, "volume must be between 0 and 100"},
		{"fallback", func(c *Config) { c.Playback.Fallback = "random" }, "invalid fallback policy"},
		{"latitude", func(c *Config) { c.Location.Latitude = 91 }, "latitude out of range"},
		{"theme", func(c *Config) { c.TUI.Theme = "neon" }, "invalid theme"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
			if !errors.Is(err, dialerrors.ErrInvalidConfig) {
				t.Error("errors.Is(err, ErrInvalidConfig) = false, want true")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Sonos.DefaultRoom = "Den"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Sonos.DefaultRoom != "Den" {
		t.Errorf("Sonos.DefaultRoom = %q, want %q", loaded.Sonos.DefaultRoom, "Den")
	}
}
