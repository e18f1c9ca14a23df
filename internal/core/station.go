package core

// Station is a named, addressable audio stream with classification metadata.
// Stations are immutable once registered in a catalog; ID is the identity.
type Station struct {
	ID           string   `json:"id" toml:"id" yaml:"id"`
	Name         string   `json:"name" toml:"name" yaml:"name"`
	Description  string   `json:"description,omitempty" toml:"description" yaml:"description"`
	StreamURL    string   `json:"stream_url" toml:"stream_url" yaml:"stream_url"`
	FallbackURLs []string `json:"fallback_urls,omitempty" toml:"fallback_urls" yaml:"fallback_urls"`
	Genre        string   `json:"genre" toml:"genre" yaml:"genre"`
	Language     string   `json:"language" toml:"language" yaml:"language"`
	Country      string   `json:"country" toml:"country" yaml:"country"`
	Bitrate      int      `json:"bitrate,omitempty" toml:"bitrate" yaml:"bitrate"`
	Format       string   `json:"format" toml:"format" yaml:"format"`
	Homepage     string   `json:"homepage,omitempty" toml:"homepage" yaml:"homepage"`
}

// URLs returns the primary stream URL followed by the fallbacks, in order.
func (s Station) URLs() []string {
	urls := make([]string, 0, 1+len(s.FallbackURLs))
	urls = append(urls, s.StreamURL)
	for _, u := range s.FallbackURLs {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// Same reports whether both stations share an identity.
func (s *Station) Same(other *Station) bool {
	if s == nil || other == nil {
		return false
	}
	return s.ID == other.ID
}
