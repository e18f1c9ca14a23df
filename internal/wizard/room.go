package wizard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/dial/internal/core"
)

// RoomModel is the bubbletea model for the room picker.
type RoomModel struct {
	rooms    []core.Device
	cursor   int
	selected *core.Device
	width    int
	height   int
}

// Styles for room picker
var (
	roomTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	roomItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	roomSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	roomActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	roomDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// NewRoomModel creates a new room picker model.
func NewRoomModel(rooms []core.Device) RoomModel {
	return RoomModel{
		rooms:  rooms,
		width:  80,
		height: 20,
	}
}

// Init initializes the model.
func (m RoomModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m RoomModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if len(m.rooms) > 0 && m.cursor < len(m.rooms) {
				m.selected = &m.rooms[m.cursor]
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < len(m.rooms)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			if len(m.rooms) > 0 {
				m.cursor = len(m.rooms) - 1
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m RoomModel) View() string {
	var b strings.Builder

	b.WriteString(roomTitleStyle.Render("🔊 Select Room"))
	b.WriteString("\n\n")

	if len(m.rooms) == 0 {
		b.WriteString(roomDimStyle.Render("No rooms found"))
		b.WriteString("\n\n")
		b.WriteString(roomDimStyle.Render("Make sure your Sonos speakers are on the same network."))
	} else {
		for i, room := range m.rooms {
			var line strings.Builder

			if room.IsActive {
				line.WriteString(roomActiveStyle.Render("● "))
			} else {
				line.WriteString(roomDimStyle.Render("○ "))
			}

			line.WriteString(room.Name)

			var info []string
			if room.Model != "" {
				info = append(info, room.Model)
			}
			if room.Address != "" {
				info = append(info, room.Address)
			}
			if len(info) > 0 {
				line.WriteString(" " + roomDimStyle.Render("("+strings.Join(info, ", ")+")"))
			}

			if i == m.cursor {
				b.WriteString(roomSelectedStyle.Render("▸ " + line.String()))
			} else {
				b.WriteString(roomItemStyle.Render("  " + line.String()))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(roomDimStyle.Render("↑/↓ navigate • enter select • esc quit"))
	b.WriteString("\n")
	b.WriteString(roomDimStyle.Render("● default room  ○ other"))

	return b.String()
}

// Selected returns the selected room, or nil if none.
func (m RoomModel) Selected() *core.Device {
	return m.selected
}

// RunRoomPicker runs the room picker and returns the selected room.
func RunRoomPicker(rooms []core.Device) (*core.Device, error) {
	model := NewRoomModel(rooms)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(RoomModel).Selected(), nil
}
