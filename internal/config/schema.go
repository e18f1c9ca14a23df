package config

// Config is the root configuration structure.
type Config struct {
	Sonos    SonosConfig    `toml:"sonos" json:"sonos"`
	Playback PlaybackConfig `toml:"playback" json:"playback"`
	Location LocationConfig `toml:"location" json:"location"`
	Catalog  CatalogConfig  `toml:"catalog" json:"catalog"`
	History  HistoryConfig  `toml:"history" json:"history"`
	TUI      TUIConfig      `toml:"tui" json:"tui"`
	Log      LogConfig      `toml:"log" json:"log"`
}

// SonosConfig holds Sonos connection settings.
type SonosConfig struct {
	DefaultRoom      string `toml:"default_room" json:"default_room"`
	Host             string `toml:"host" json:"host"`
	Port             int    `toml:"port" json:"port"`
	DiscoveryTimeout int    `toml:"discovery_timeout" json:"discovery_timeout"`
	PollInterval     int    `toml:"poll_interval" json:"poll_interval"`
}

// PlaybackConfig holds playback session settings.
type PlaybackConfig struct {
	Volume      int    `toml:"volume" json:"volume"`
	Fallback    string `toml:"fallback" json:"fallback"`
	MaxAttempts int    `toml:"max_attempts" json:"max_attempts"`
	LoadTimeout int    `toml:"load_timeout" json:"load_timeout"`
}

// LocationConfig holds country detection settings.
type LocationConfig struct {
	Country        string  `toml:"country" json:"country"`
	DefaultCountry string  `toml:"default_country" json:"default_country"`
	DetectTimeout  int     `toml:"detect_timeout" json:"detect_timeout"`
	Latitude       float64 `toml:"latitude" json:"latitude"`
	Longitude      float64 `toml:"longitude" json:"longitude"`
	LocatorURL     string  `toml:"locator_url" json:"locator_url"`
	GeocoderURL    string  `toml:"geocoder_url" json:"geocoder_url"`
}

// HasCoordinates reports whether fixed coordinates are configured.
func (c *LocationConfig) HasCoordinates() bool {
	return c.Latitude != 0 || c.Longitude != 0
}

// CatalogConfig holds station catalog settings.
type CatalogConfig struct {
	File string `toml:"file" json:"file"`
}

// HistoryConfig holds play history settings.
type HistoryConfig struct {
	Disabled bool   `toml:"disabled" json:"disabled"`
	Path     string `toml:"path" json:"path"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme" json:"theme"`
	RefreshInterval int    `toml:"refresh_interval" json:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
	JSON  bool   `toml:"json" json:"json"`
}
