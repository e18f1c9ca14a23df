package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessro/dial/internal/catalog"
	"github.com/tessro/dial/internal/core"
	"github.com/tessro/dial/internal/sonos"
)

var statusRoom string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what a room is playing",
	Long: `Show the transport state, volume and current stream of a Sonos room.
Streams started by dial are matched back to their catalog station.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusRoom, "room", "r", "", "Sonos room")
	rootCmd.AddCommand(statusCmd)
}

type statusResult struct {
	Room    string        `json:"room"`
	State   string        `json:"state"`
	Volume  int           `json:"volume"`
	URI     string        `json:"uri,omitempty"`
	Title   string        `json:"title,omitempty"`
	Station *core.Station `json:"station,omitempty"`
	Elapsed string        `json:"elapsed,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := controlContext(cmd)
	defer cancel()

	r, err := findRoom(ctx, statusRoom)
	if err != nil {
		return err
	}

	info, err := r.client.GetTransportInfo(ctx, r.device)
	if err != nil {
		return fmt.Errorf("failed to get transport state: %w", err)
	}
	pos, err := r.client.GetPositionInfo(ctx, r.device)
	if err != nil {
		return fmt.Errorf("failed to get position: %w", err)
	}
	volume, err := r.client.GetVolume(ctx, r.device)
	if err != nil {
		return fmt.Errorf("failed to get volume: %w", err)
	}

	res := statusResult{
		Room:    r.name,
		State:   info.CurrentTransportState,
		Volume:  volume,
		URI:     pos.TrackURI,
		Title:   sonos.StreamTitle(pos.TrackMetaData),
		Elapsed: pos.RelTime,
	}
	if c, err := openCatalog(); err == nil {
		res.Station = stationForURI(c, pos.TrackURI)
	}

	if JSONOutput() {
		return printJSON(res)
	}

	fmt.Printf("%s %s  %s\n", stateIcon(res.State), res.Room, res.State)
	if res.Station != nil {
		fmt.Printf("  Station: %s (%s, %s)\n", res.Station.Name, res.Station.Language, res.Station.Country)
	}
	if res.Title != "" {
		fmt.Printf("  Now:     %s\n", res.Title)
	}
	fmt.Printf("  Volume:  %d%%\n", res.Volume)
	if Verbose() && res.URI != "" {
		fmt.Printf("  URI:     %s\n", res.URI)
	}
	return nil
}

// stationForURI finds the station whose transport URI is uri.
func stationForURI(c *catalog.Catalog, uri string) *core.Station {
	if uri == "" {
		return nil
	}
	matches := c.Filter(func(st core.Station) bool {
		for _, u := range st.URLs() {
			if ru, err := sonos.RadioURI(u, st.Format); err == nil && ru == uri {
				return true
			}
		}
		return false
	})
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

func stateIcon(state string) string {
	switch state {
	case sonos.StatePlaying:
		return "▶"
	case sonos.StatePausedPlayback:
		return "⏸"
	case sonos.StateTransitioning:
		return "◌"
	default:
		return "⏹"
	}
}
