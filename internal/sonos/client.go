package sonos

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"
)

// Transport states reported by GetTransportInfo.
const (
	StatePlaying        = "PLAYING"
	StatePausedPlayback = "PAUSED_PLAYBACK"
	StateStopped        = "STOPPED"
	StateTransitioning  = "TRANSITIONING"
)

// Client provides high-level access to Sonos devices.
type Client struct {
	discovery *Discovery
	soap      *SOAPClient
}

// NewClient creates a new Sonos client. discoveryTimeout bounds each SSDP
// search; zero uses the default.
func NewClient(discoveryTimeout time.Duration) *Client {
	return &Client{
		discovery: NewDiscovery(discoveryTimeout),
		soap:      NewSOAPClient(),
	}
}

// Discover finds all Sonos devices on the network.
func (c *Client) Discover(ctx context.Context) ([]*Device, error) {
	devices, err := c.discovery.Discover(ctx)
	if err != nil {
		return devices, err
	}
	for _, d := range devices {
		if d.Name != "" {
			continue
		}
		if name, err := c.GetZoneName(ctx, d); err == nil {
			d.Name = name
		}
	}
	return devices, nil
}

// GetZoneName returns the room name a device is assigned to.
func (c *Client) GetZoneName(ctx context.Context, device *Device) (string, error) {
	resp, err := c.soap.Call(ctx, device.IP, device.Port, DevicePropertiesEndpoint, DevicePropertiesService, "GetZoneAttributes")
	if err != nil {
		return "", err
	}

	var envelope struct {
		Body struct {
			Response struct {
				CurrentZoneName string `xml:"CurrentZoneName"`
			} `xml:"GetZoneAttributesResponse"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(resp, &envelope); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	return envelope.Body.Response.CurrentZoneName, nil
}

// TransportInfo contains playback transport state.
type TransportInfo struct {
	CurrentTransportState  string
	CurrentTransportStatus string
	CurrentSpeed           string
}

// GetTransportInfo retrieves the current transport state.
func (c *Client) GetTransportInfo(ctx context.Context, device *Device) (*TransportInfo, error) {
	resp, err := c.soap.Call(ctx, device.IP, device.Port, AVTransportEndpoint, AVTransportService, "GetTransportInfo",
		Arg{"InstanceID", "0"})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Body struct {
			Response TransportInfo `xml:"GetTransportInfoResponse"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(resp, &envelope); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &envelope.Body.Response, nil
}

// PositionInfo contains what the transport is rendering right now.
type PositionInfo struct {
	TrackMetaData string `xml:"TrackMetaData"`
	TrackURI      string `xml:"TrackURI"`
	RelTime       string `xml:"RelTime"`
}

// GetPositionInfo retrieves the current track position.
func (c *Client) GetPositionInfo(ctx context.Context, device *Device) (*PositionInfo, error) {
	resp, err := c.soap.Call(ctx, device.IP, device.Port, AVTransportEndpoint, AVTransportService, "GetPositionInfo",
		Arg{"InstanceID", "0"})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Body struct {
			Response PositionInfo `xml:"GetPositionInfoResponse"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(resp, &envelope); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &envelope.Body.Response, nil
}

// GetVolume retrieves the current volume level (0-100).
func (c *Client) GetVolume(ctx context.Context, device *Device) (int, error) {
	resp, err := c.soap.Call(ctx, device.IP, device.Port, RenderingControlEndpoint, RenderingControlService, "GetVolume",
		Arg{"InstanceID", "0"},
		Arg{"Channel", "Master"})
	if err != nil {
		return 0, err
	}

	var envelope struct {
		Body struct {
			Response struct {
				CurrentVolume string `xml:"CurrentVolume"`
			} `xml:"GetVolumeResponse"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(resp, &envelope); err != nil {
		return 0, fmt.Errorf("parse response: %w", err)
	}

	vol, _ := strconv.Atoi(envelope.Body.Response.CurrentVolume)
	return vol, nil
}

// SetVolume sets the volume level (0-100).
func (c *Client) SetVolume(ctx context.Context, device *Device, volume int) error {
	volume = max(0, min(100, volume))
	_, err := c.soap.Call(ctx, device.IP, device.Port, RenderingControlEndpoint, RenderingControlService, "SetVolume",
		Arg{"InstanceID", "0"},
		Arg{"Channel", "Master"},
		Arg{"DesiredVolume", strconv.Itoa(volume)})
	return err
}

// SetAVTransportURI points the transport at uri without starting it.
func (c *Client) SetAVTransportURI(ctx context.Context, device *Device, uri, metadata string) error {
	_, err := c.soap.Call(ctx, device.IP, device.Port, AVTransportEndpoint, AVTransportService, "SetAVTransportURI",
		Arg{"InstanceID", "0"},
		Arg{"CurrentURI", uri},
		Arg{"CurrentURIMetaData", metadata})
	return err
}

// Play starts playback.
func (c *Client) Play(ctx context.Context, device *Device) error {
	_, err := c.soap.Call(ctx, device.IP, device.Port, AVTransportEndpoint, AVTransportService, "Play",
		Arg{"InstanceID", "0"},
		Arg{"Speed", "1"})
	return err
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context, device *Device) error {
	_, err := c.soap.Call(ctx, device.IP, device.Port, AVTransportEndpoint, AVTransportService, "Pause",
		Arg{"InstanceID", "0"})
	return err
}

// Stop stops playback.
func (c *Client) Stop(ctx context.Context, device *Device) error {
	_, err := c.soap.Call(ctx, device.IP, device.Port, AVTransportEndpoint, AVTransportService, "Stop",
		Arg{"InstanceID", "0"})
	return err
}
