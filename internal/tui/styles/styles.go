package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/dial/internal/core"
)

// Palette is a set of colors the UI is drawn with.
type Palette struct {
	Primary   lipgloss.Color
	Live      lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	TextDim   lipgloss.Color
}

var palettes = map[string]Palette{
	"dark": {
		Primary:   lipgloss.Color("#F97316"), // Orange
		Live:      lipgloss.Color("#22C55E"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#EF4444"), // Red
		Border:    lipgloss.Color("#4B5563"),
		Text:      lipgloss.Color("#F9FAFB"),
		TextMuted: lipgloss.Color("#9CA3AF"),
		TextDim:   lipgloss.Color("#6B7280"),
	},
	"light": {
		Primary:   lipgloss.Color("#C2410C"),
		Live:      lipgloss.Color("#15803D"),
		Warning:   lipgloss.Color("#B45309"),
		Error:     lipgloss.Color("#B91C1C"),
		Border:    lipgloss.Color("#9CA3AF"),
		Text:      lipgloss.Color("#111827"),
		TextMuted: lipgloss.Color("#4B5563"),
		TextDim:   lipgloss.Color("#6B7280"),
	},
}

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	Error     lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
)

var current Palette

func init() {
	Use("dark")
}

// Use switches the active palette. Unknown names keep the dark palette.
func Use(theme string) {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["dark"]
	}
	current = p

	Title = lipgloss.NewStyle().Bold(true).Foreground(p.Text)
	Subtitle = lipgloss.NewStyle().Foreground(p.TextMuted)
	Label = lipgloss.NewStyle().Foreground(p.TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	Muted = lipgloss.NewStyle().Foreground(p.TextMuted)
	Dim = lipgloss.NewStyle().Foreground(p.TextDim)
	Playing = lipgloss.NewStyle().Foreground(p.Live)
	Paused = lipgloss.NewStyle().Foreground(p.Warning)
	Error = lipgloss.NewStyle().Foreground(p.Error)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border)
	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary)
}

// Themes returns the names accepted by Use.
func Themes() []string {
	return []string{"dark", "light"}
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// VolumeBar renders a volume level (0-100) as a bar.
func VolumeBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(current.Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(current.Border)

	return filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("─", width-filled))
}

// StateIcon returns an icon for a session state.
func StateIcon(kind core.StateKind) string {
	switch kind {
	case core.StatePlaying:
		return Playing.Render("▶")
	case core.StatePaused:
		return Paused.Render("⏸")
	case core.StateLoading, core.StateReady:
		return Paused.Render("◌")
	case core.StateFailed:
		return Error.Render("✗")
	default:
		return Dim.Render("■")
	}
}

// StateLabel returns a human label for a session state.
func StateLabel(kind core.StateKind) string {
	switch kind {
	case core.StatePlaying:
		return "Playing"
	case core.StatePaused:
		return "Paused"
	case core.StateLoading:
		return "Tuning in..."
	case core.StateReady:
		return "Buffering..."
	case core.StateFailed:
		return "Failed"
	default:
		return "Stopped"
	}
}
