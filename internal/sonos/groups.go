package sonos

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"net/url"
	"sort"
	"strconv"
	"strings"

	dialerrors "github.com/tessro/dial/internal/errors"
)

// Zone is a room, or a group of rooms playing together. Transport commands
// must go to the coordinator.
type Zone struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Coordinator *Device   `json:"coordinator"`
	Members     []*Device `json:"members"`
}

// Zones returns the household's zones as seen by device, sorted by name.
func (c *Client) Zones(ctx context.Context, device *Device) ([]Zone, error) {
	resp, err := c.soap.Call(ctx, device.IP, device.Port, ZoneGroupTopologyEndpoint, ZoneGroupTopologyService, "GetZoneGroupState")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Body struct {
			Response struct {
				ZoneGroupState string `xml:"ZoneGroupState"`
			} `xml:"GetZoneGroupStateResponse"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(resp, &envelope); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return parseZoneGroupState(html.UnescapeString(envelope.Body.Response.ZoneGroupState))
}

// FindZone returns the coordinator of the zone containing a room named
// name, asking seed for the topology.
func (c *Client) FindZone(ctx context.Context, seed *Device, name string) (*Device, error) {
	zones, err := c.Zones(ctx, seed)
	if err != nil {
		return nil, err
	}
	for _, z := range zones {
		for _, m := range z.Members {
			if strings.EqualFold(m.Name, name) {
				return z.Coordinator, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no zone named %q", dialerrors.ErrNoRenderer, name)
}

func parseZoneGroupState(xmlData string) ([]Zone, error) {
	type zoneMember struct {
		UUID      string `xml:"UUID,attr"`
		Location  string `xml:"Location,attr"`
		ZoneName  string `xml:"ZoneName,attr"`
		Invisible string `xml:"Invisible,attr"`
	}

	type zoneGroup struct {
		Coordinator string       `xml:"Coordinator,attr"`
		ID          string       `xml:"ID,attr"`
		Members     []zoneMember `xml:"ZoneGroupMember"`
	}

	var state struct {
		Groups []zoneGroup `xml:"ZoneGroups>ZoneGroup"`
	}
	if err := xml.Unmarshal([]byte(xmlData), &state); err != nil {
		return nil, fmt.Errorf("parse zone group state: %w", err)
	}

	var zones []Zone
	for _, zg := range state.Groups {
		zone := Zone{ID: zg.ID}

		var names []string
		for _, m := range zg.Members {
			// Bonded satellites and subs are invisible and can't be addressed.
			if m.Invisible == "1" {
				continue
			}
			dev := &Device{
				UUID:     m.UUID,
				Name:     m.ZoneName,
				Port:     defaultPort,
				Location: m.Location,
			}
			if u, err := url.Parse(m.Location); err == nil {
				dev.IP = u.Hostname()
				if p, err := strconv.Atoi(u.Port()); err == nil {
					dev.Port = p
				}
			}

			if m.UUID == zg.Coordinator {
				zone.Coordinator = dev
			}
			zone.Members = append(zone.Members, dev)
			names = append(names, m.ZoneName)
		}
		if zone.Coordinator == nil {
			continue
		}

		zone.Name = zone.Coordinator.Name
		if len(names) > 1 {
			zone.Name = strings.Join(names, " + ")
		}
		zones = append(zones, zone)
	}

	sort.Slice(zones, func(i, j int) bool { return zones[i].Name < zones[j].Name })
	return zones, nil
}
