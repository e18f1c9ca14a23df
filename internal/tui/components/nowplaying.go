package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/dial/internal/core"
	"github.com/tessro/dial/internal/tui/styles"
)

// NowPlaying displays the station the session is tuned to
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(snap core.Snapshot, room string, width, height int) string {
	title := styles.PanelTitle("Now Playing", true)

	var content string
	if !snap.HasStation() {
		content = n.renderIdle(snap)
	} else {
		content = n.renderStation(snap, room, width-4)
	}

	panel := styles.Panel(false).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (n *NowPlaying) renderIdle(snap core.Snapshot) string {
	if snap.Err != nil {
		return styles.Error.Render("Error: " + snap.Err.Error())
	}
	return styles.Muted.Render("Nothing playing. Pick a station and press enter.")
}

func (n *NowPlaying) renderStation(snap core.Snapshot, room string, width int) string {
	st := snap.Station

	icon := styles.StateIcon(snap.State)
	name := styles.Title.Width(width - 2).Render(st.Name)

	var meta []string
	for _, s := range []string{st.Genre, st.Language, st.Country} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	details := styles.Subtitle.Render(strings.Join(meta, " · "))

	stream := st.Format
	if st.Bitrate > 0 {
		stream = fmt.Sprintf("%s %dkbps", st.Format, st.Bitrate)
	}

	barWidth := width - 12
	if barWidth < 10 {
		barWidth = 10
	}
	volume := fmt.Sprintf("🔊 %s %3d%%", styles.VolumeBar(snap.VolumePercent(), barWidth), snap.VolumePercent())

	status := styles.StateLabel(snap.State)
	if room != "" {
		status += " on " + room
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+name,
		"  "+details,
		"  "+styles.Dim.Render(stream),
		"",
		styles.Muted.Render(status),
		volume,
	)
}
