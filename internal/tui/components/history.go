package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/dial/internal/history"
	"github.com/tessro/dial/internal/tui/styles"
)

// History displays recently played stations
type History struct{}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{}
}

// Render renders the history panel
func (h *History) Render(plays []history.Play, width, height int, focused bool) string {
	title := styles.PanelTitle("History", focused)

	var content string
	if len(plays) == 0 {
		content = styles.Muted.Render("No history yet")
	} else {
		content = h.renderHistory(plays, width-4, height-4, time.Now())
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (h *History) renderHistory(plays []history.Play, width, maxLines int, now time.Time) string {
	lines := make([]string, 0, maxLines)

	for i, p := range plays {
		if i >= maxLines {
			break
		}

		timeAgo := formatTimeAgo(now.Sub(p.StartedAt), p.StartedAt)
		length := ""
		if !p.EndedAt.IsZero() {
			length = formatDuration(p.Duration())
		}

		right := timeAgo
		if length != "" {
			right = length + "  " + timeAgo
		}

		name := truncate(p.StationName, width-len(right)-3)
		padding := width - 2 - len(name) - len(right)
		if padding < 1 {
			padding = 1
		}

		line := fmt.Sprintf("%s %s%s%s",
			styles.Dim.Render("♪"),
			name,
			lipgloss.NewStyle().Width(padding).Render(""),
			styles.Dim.Render(right))

		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTimeAgo(d time.Duration, t time.Time) string {
	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return t.Format("Jan 2")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d >= time.Hour {
		return fmt.Sprintf("%d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
