package sonos

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tessro/dial/internal/core"
)

const (
	ssdpAddr    = "239.255.255.250:1900"
	sonosURN    = "urn:schemas-upnp-org:device:ZonePlayer:1"
	defaultPort = 1400
)

var mSearchRequest = []byte(
	"M-SEARCH * HTTP/1.1\r\n" +
		"HOST: 239.255.255.250:1900\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 2\r\n" +
		"ST: " + sonosURN + "\r\n" +
		"\r\n",
)

// Device represents a discovered Sonos zone player.
type Device struct {
	IP       string    `json:"ip"`
	Port     int       `json:"port"`
	UUID     string    `json:"uuid"`
	Model    string    `json:"model,omitempty"`
	Name     string    `json:"name"`
	Location string    `json:"location,omitempty"`
	LastSeen time.Time `json:"last_seen"`
}

// DeviceAt returns a device for a known address, skipping discovery.
func DeviceAt(host string, port int) *Device {
	if port == 0 {
		port = defaultPort
	}
	return &Device{IP: host, Port: port, Name: host, LastSeen: time.Now()}
}

// Core converts the device to the renderer-neutral form.
func (d *Device) Core() core.Device {
	return core.Device{
		ID:       d.UUID,
		Name:     d.Name,
		Model:    d.Model,
		Address:  net.JoinHostPort(d.IP, strconv.Itoa(d.Port)),
		Platform: core.PlatformSonos,
	}
}

// Discovery handles Sonos device discovery via SSDP.
type Discovery struct {
	timeout time.Duration
}

// NewDiscovery creates a new Discovery instance.
func NewDiscovery(timeout time.Duration) *Discovery {
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	return &Discovery{timeout: timeout}
}

// Discover performs SSDP discovery and returns all found Sonos devices.
func (d *Discovery) Discover(ctx context.Context) ([]*Device, error) {
	addr, err := net.ResolveUDPAddr("udp4", ssdpAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve ssdp addr: %w", err)
	}

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, fmt.Errorf("listen udp: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(d.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	if _, err := conn.WriteToUDP(mSearchRequest, addr); err != nil {
		return nil, fmt.Errorf("send m-search: %w", err)
	}

	var devices []*Device
	seen := make(map[string]bool)
	buf := make([]byte, 2048)

	for {
		select {
		case <-ctx.Done():
			return devices, ctx.Err()
		default:
		}

		n, remoteAddr, err := conn.ReadFromUDP(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				break // Discovery complete
			}
			continue
		}

		device, err := parseResponse(buf[:n], remoteAddr)
		if err != nil || device == nil {
			continue
		}

		if seen[device.UUID] {
			continue
		}
		seen[device.UUID] = true

		device.LastSeen = time.Now()
		devices = append(devices, device)
	}

	return devices, nil
}

// parseResponse parses an SSDP response into a Device. Responses from
// anything other than a zone player yield nil.
func parseResponse(data []byte, addr *net.UDPAddr) (*Device, error) {
	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(data)), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.Header.Get("ST") != sonosURN {
		return nil, nil
	}

	// USN format: uuid:RINCON_xxx::urn:schemas-upnp-org:device:ZonePlayer:1
	uuid := extractUUID(resp.Header.Get("USN"))
	if uuid == "" {
		return nil, nil
	}

	location := resp.Header.Get("Location")
	port := defaultPort
	if u, err := url.Parse(location); err == nil && u.Port() != "" {
		if p, err := strconv.Atoi(u.Port()); err == nil {
			port = p
		}
	}

	return &Device{
		IP:       addr.IP.String(),
		Port:     port,
		UUID:     uuid,
		Model:    modelFromServer(resp.Header.Get("Server")),
		Location: location,
	}, nil
}

func extractUUID(usn string) string {
	if !strings.HasPrefix(usn, "uuid:") {
		return ""
	}
	id, _, _ := strings.Cut(strings.TrimPrefix(usn, "uuid:"), "::")
	return id
}

// modelFromServer pulls the model out of a header like
// "Linux UPnP/1.0 Sonos/70.3-35220 (ZPS9)".
func modelFromServer(server string) string {
	start := strings.LastIndex(server, "(")
	end := strings.LastIndex(server, ")")
	if start < 0 || end <= start+1 {
		return ""
	}
	return server[start+1 : end]
}
