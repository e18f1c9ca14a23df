package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/dial/internal/core"
	"github.com/tessro/dial/internal/tui/styles"
)

// Stations displays the station list with a cursor
type Stations struct {
	offset   int
	selected int
}

// NewStations creates a new Stations component
func NewStations() *Stations {
	return &Stations{}
}

// SelectNext moves the cursor down, stopping at the last of n stations.
func (s *Stations) SelectNext(n int) {
	if s.selected < n-1 {
		s.selected++
	}
}

// SelectPrev moves the cursor up
func (s *Stations) SelectPrev() {
	if s.selected > 0 {
		s.selected--
	}
}

// Reset moves the cursor back to the top
func (s *Stations) Reset() {
	s.selected = 0
	s.offset = 0
}

// Selected returns the selected index
func (s *Stations) Selected() int {
	return s.selected
}

// Render renders the station panel. current marks the station the session
// is tuned to, if any.
func (s *Stations) Render(stations []core.Station, current *core.Station, filter string, width, height int, focused bool) string {
	label := "Stations"
	if filter != "" {
		label = fmt.Sprintf("Stations (%d matching %q)", len(stations), filter)
	}
	title := styles.PanelTitle(label, focused)

	var content string
	if len(stations) == 0 {
		content = styles.Muted.Render("No stations match")
	} else {
		content = s.renderStations(stations, current, width-4, height-4)
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

func (s *Stations) renderStations(stations []core.Station, current *core.Station, width, maxLines int) string {
	if s.selected >= len(stations) {
		s.selected = len(stations) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}

	visibleCount := maxLines - 1 // Leave room for "more" indicator
	if visibleCount < 1 {
		visibleCount = 1
	}

	// Keep the cursor on screen
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visibleCount {
		s.offset = s.selected - visibleCount + 1
	}

	start := s.offset
	end := start + visibleCount
	if end > len(stations) {
		end = len(stations)
	}

	lines := make([]string, 0, end-start+1)

	// Fixed overhead: "▸ " (2) + "● " (2) + " — " (3)
	const overhead = 7

	for i := start; i < end; i++ {
		st := stations[i]

		available := width - overhead
		detail := st.Language
		if st.Country != "" {
			detail = st.Language + ", " + st.Country
		}

		detailSpace := available / 3
		if len(detail) < detailSpace {
			detailSpace = len(detail)
		}
		name := truncate(st.Name, available-detailSpace)
		detail = truncate(detail, detailSpace)

		selector := "  "
		if i == s.selected {
			selector = "▸ "
			name = styles.Highlight.Render(name)
		}

		marker := "  "
		if current.Same(&st) {
			marker = styles.Playing.Render("● ")
		}

		lines = append(lines, fmt.Sprintf("%s%s%s — %s", selector, marker, name, styles.Muted.Render(detail)))
	}

	if end < len(stations) {
		more := styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(stations)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
