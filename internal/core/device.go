package core

// Platform indicates the renderer's platform.
type Platform string

const (
	PlatformSonos Platform = "sonos"
)

// Device represents a network renderer a session can play on.
type Device struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Model    string   `json:"model,omitempty"`
	Address  string   `json:"address"`
	Platform Platform `json:"platform"`
	IsActive bool     `json:"is_active"`
}
