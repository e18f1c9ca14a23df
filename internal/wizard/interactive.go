package wizard

import (
	"os"

	"github.com/tessro/dial/internal/core"
	"golang.org/x/term"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled bool
	rooms   []core.Device
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// SetRooms sets the rooms offered by the room picker.
func (i *Interactive) SetRooms(rooms []core.Device) {
	i.rooms = rooms
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptStation asks for a station if interactive mode is available.
// Returns nil if cancelled or not interactive.
func (i *Interactive) PromptStation(title string, stations []core.Station) (*core.Station, error) {
	if !i.CanInteract() {
		return nil, nil
	}
	return SelectStation(title, "Type / to filter", stations)
}

// PromptRoom launches the room picker if interactive mode is available.
// Returns nil if cancelled or not interactive.
func (i *Interactive) PromptRoom() (*core.Device, error) {
	if !i.CanInteract() || len(i.rooms) == 0 {
		return nil, nil
	}
	return RunRoomPicker(i.rooms)
}

// NeedsStation returns true if a station argument is required but missing.
func NeedsStation(args []string) bool {
	return len(args) == 0
}

// NeedsRoom returns true if the user must pick a room: none was named and
// discovery did not find exactly one.
func NeedsRoom(roomFlag string, rooms []core.Device) bool {
	if roomFlag != "" {
		return false
	}
	return len(rooms) != 1
}

// OnlyRoom returns the single room if there is exactly one.
func OnlyRoom(rooms []core.Device) *core.Device {
	if len(rooms) == 1 {
		return &rooms[0]
	}
	return nil
}
