// Package stream checks that a station's stream is reachable and serves
// the format the station claims before a renderer is pointed at it.
package stream

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	dialerrors "github.com/tessro/dial/internal/errors"
)

// Info is what the stream's response headers say about it.
type Info struct {
	URL         string
	ContentType string
	Name        string // icy-name
	Genre       string // icy-genre
	Bitrate     int    // icy-br, kbit/s
}

// Prober opens stream URLs just long enough to read their headers.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// NewProber creates a prober whose connect phase is bounded by timeout.
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{
		DisableCompression:    true,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &Prober{
		client:  &http.Client{Transport: transport},
		timeout: timeout,
	}
}

// Probe requests url and checks the status and content type against
// format. It returns ErrStreamUnreachable or ErrCodecMismatch on failure.
func (p *Prober) Probe(ctx context.Context, url, format string) (Info, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", dialerrors.ErrStreamUnreachable, err)
	}
	req.Header.Set("Icy-MetaData", "0")
	req.Header.Set("User-Agent", "dial")

	resp, err := p.client.Do(req)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", dialerrors.ErrStreamUnreachable, err)
	}
	// Only headers are needed; closing aborts the stream.
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("%w: unexpected status: %d", dialerrors.ErrStreamUnreachable, resp.StatusCode)
	}

	info := Info{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Name:        resp.Header.Get("icy-name"),
		Genre:       resp.Header.Get("icy-genre"),
	}
	if br, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("icy-br"))); err == nil {
		info.Bitrate = br
	}

	if !Compatible(format, info.ContentType) {
		return info, fmt.Errorf("%w: %s stream served as %q", dialerrors.ErrCodecMismatch, format, info.ContentType)
	}
	return info, nil
}

var formatTypes = map[string][]string{
	"mp3": {"audio/mpeg", "audio/mp3", "audio/mpeg3", "audio/x-mpeg"},
	"aac": {"audio/aac", "audio/aacp", "audio/x-aac", "audio/mp4", "audio/x-m4a"},
	"ogg": {"audio/ogg", "application/ogg", "audio/vorbis", "audio/opus"},
	"hls": {
		"application/vnd.apple.mpegurl",
		"application/x-mpegurl",
		"audio/mpegurl",
		"audio/x-mpegurl",
	},
}

// Compatible reports whether a response content type can carry format.
// Missing or generic content types are given the benefit of the doubt, as
// are formats dial has no table entry for.
func Compatible(format, contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "" || mediaType == "application/octet-stream" {
		return true
	}

	format = strings.ToLower(format)
	accepted, ok := formatTypes[format]
	if !ok {
		return strings.HasPrefix(mediaType, "audio/") || mediaType == "application/ogg"
	}
	for _, t := range accepted {
		if mediaType == t {
			return true
		}
	}
	return false
}
