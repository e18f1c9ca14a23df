package sonos

import (
	"encoding/xml"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
)

const (
	didlNS    = "urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/"
	dcNS      = "http://purl.org/dc/elements/1.1/"
	upnpNS    = "urn:schemas-upnp-org:metadata-1-0/upnp/"
	rinconNS  = "urn:schemas-rinconnetworks-com:metadata-1-0/"
	radioType = "object.item.audioItem.audioBroadcast"
)

// didlRadio is the DIDL-Lite document Sonos expects alongside a radio URI.
type didlRadio struct {
	XMLName xml.Name `xml:"DIDL-Lite"`
	NS      string   `xml:"xmlns,attr"`
	DC      string   `xml:"xmlns:dc,attr"`
	UPnP    string   `xml:"xmlns:upnp,attr"`
	R       string   `xml:"xmlns:r,attr"`
	Item    struct {
		ID         string `xml:"id,attr"`
		ParentID   string `xml:"parentID,attr"`
		Restricted string `xml:"restricted,attr"`
		Title      string `xml:"dc:title"`
		Class      string `xml:"upnp:class"`
		Desc       struct {
			ID        string `xml:"id,attr"`
			NameSpace string `xml:"nameSpace,attr"`
			Value     string `xml:",chardata"`
		} `xml:"desc"`
	} `xml:"item"`
}

// RadioMetadata returns the DIDL-Lite metadata that makes a Sonos player
// show a stream as a radio station named after station.
func RadioMetadata(station core.Station) string {
	var d didlRadio
	d.NS = didlNS
	d.DC = dcNS
	d.UPnP = upnpNS
	d.R = rinconNS
	d.Item.ID = "R:0/0/0"
	d.Item.ParentID = "R:0/0"
	d.Item.Restricted = "true"
	d.Item.Title = station.Name
	d.Item.Class = radioType
	d.Item.Desc.ID = "cdudn"
	d.Item.Desc.NameSpace = rinconNS
	d.Item.Desc.Value = "SA_RINCON65031_"

	out, err := xml.Marshal(d)
	if err != nil {
		return ""
	}
	return string(out)
}

// RadioURI converts a stream URL into the URI a Sonos transport accepts.
// Plain Icecast/Shoutcast streams use the x-rincon-mp3radio scheme; HLS
// playlists are passed through.
func RadioURI(streamURL, format string) (string, error) {
	u, err := url.Parse(streamURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: bad stream url %q", dialerrors.ErrInvalidStation, streamURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", dialerrors.ErrInvalidStation, u.Scheme)
	}

	if strings.EqualFold(format, "hls") {
		return streamURL, nil
	}
	return "x-rincon-mp3radio://" + strings.TrimPrefix(strings.TrimPrefix(streamURL, "https://"), "http://"), nil
}

// didlItem is the subset of a DIDL-Lite item dial reads back.
type didlItem struct {
	Title         string `xml:"http://purl.org/dc/elements/1.1/ title"`
	StreamContent string `xml:"urn:schemas-rinconnetworks-com:metadata-1-0/ streamContent"`
}

type didlLite struct {
	Items []didlItem `xml:"urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/ item"`
}

// StreamTitle returns what a radio stream says it is playing, from
// GetPositionInfo's TrackMetaData. It is empty when the stream sends
// nothing.
func StreamTitle(metadata string) string {
	if metadata == "" || metadata == "NOT_IMPLEMENTED" {
		return ""
	}
	metadata = html.UnescapeString(metadata)

	var didl didlLite
	if err := xml.Unmarshal([]byte(metadata), &didl); err == nil && len(didl.Items) > 0 {
		if s := strings.TrimSpace(didl.Items[0].StreamContent); s != "" {
			return s
		}
		return strings.TrimSpace(didl.Items[0].Title)
	}

	// Some firmware sends unqualified prefixes that defeat namespace parsing.
	if s := extractXMLElement(metadata, "streamContent"); s != "" {
		return s
	}
	return extractXMLElement(metadata, "title")
}

// extractXMLElement extracts content from an XML element, ignoring namespace prefixes.
func extractXMLElement(doc, localName string) string {
	re := regexp.MustCompile(`<(?:\w+:)?` + localName + `[^>]*>([^<]*)</(?:\w+:)?` + localName + `>`)
	matches := re.FindStringSubmatch(doc)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}
