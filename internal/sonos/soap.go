package sonos

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// UPnP service endpoints
	AVTransportEndpoint       = "/MediaRenderer/AVTransport/Control"
	RenderingControlEndpoint  = "/MediaRenderer/RenderingControl/Control"
	ZoneGroupTopologyEndpoint = "/ZoneGroupTopology/Control"
	DevicePropertiesEndpoint  = "/DeviceProperties/Control"

	// UPnP service URNs
	AVTransportService       = "urn:schemas-upnp-org:service:AVTransport:1"
	RenderingControlService  = "urn:schemas-upnp-org:service:RenderingControl:1"
	ZoneGroupTopologyService = "urn:schemas-upnp-org:service:ZoneGroupTopology:1"
	DevicePropertiesService  = "urn:schemas-upnp-org:service:DeviceProperties:1"
)

// Arg is a SOAP action argument. UPnP actions expect their arguments in
// the order the service description lists them, so calls take a slice.
type Arg struct {
	Name  string
	Value string
}

// UPnPError is a SOAP fault returned by a device.
type UPnPError struct {
	Code        int
	Description string
	Status      int
}

func (e *UPnPError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("upnp error %d: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("upnp error %d (status %d)", e.Code, e.Status)
}

// SOAPClient makes SOAP requests to Sonos devices.
type SOAPClient struct {
	httpClient *http.Client
}

// NewSOAPClient creates a new SOAP client.
func NewSOAPClient() *SOAPClient {
	return &SOAPClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Call makes a SOAP request to a Sonos device.
func (c *SOAPClient) Call(ctx context.Context, host string, port int, endpoint, service, action string, args ...Arg) ([]byte, error) {
	url := fmt.Sprintf("http://%s:%d%s", host, port, endpoint)

	body := buildSOAPBody(service, action, args)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPAction", fmt.Sprintf("\"%s#%s\"", service, action))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("soap request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseFault(resp.StatusCode, respBody)
	}

	return respBody, nil
}

func buildSOAPBody(service, action string, args []Arg) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	buf.WriteString(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">`)
	buf.WriteString(`<s:Body>`)
	fmt.Fprintf(&buf, `<u:%s xmlns:u="%s">`, action, service)

	for _, a := range args {
		fmt.Fprintf(&buf, "<%s>%s</%s>", a.Name, xmlEscape(a.Value), a.Name)
	}

	fmt.Fprintf(&buf, `</u:%s>`, action)
	buf.WriteString(`</s:Body>`)
	buf.WriteString(`</s:Envelope>`)

	return buf.Bytes()
}

// parseFault extracts the UPnP error code from a SOAP fault body.
func parseFault(status int, body []byte) error {
	var envelope struct {
		Body struct {
			Fault struct {
				Detail struct {
					UPnPError struct {
						ErrorCode        int    `xml:"errorCode"`
						ErrorDescription string `xml:"errorDescription"`
					} `xml:"UPnPError"`
				} `xml:"detail"`
			} `xml:"Fault"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("soap error (status %d): %s", status, string(body))
	}

	e := envelope.Body.Fault.Detail.UPnPError
	desc := e.ErrorDescription
	if desc == "" {
		desc = upnpErrorText[e.ErrorCode]
	}
	return &UPnPError{Code: e.ErrorCode, Description: desc, Status: status}
}

// Error codes Sonos returns from AVTransport actions.
var upnpErrorText = map[int]string{
	701: "transition not available",
	714: "illegal MIME type",
	716: "resource not found",
	800: "command not supported on a grouped player",
}

// xmlEscape escapes special XML characters.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
