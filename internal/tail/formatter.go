package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/dial/internal/core"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template. An invalid template is
// reported by ParseTemplate; here it is ignored.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if t, err := ParseTemplate(tmpl); err == nil {
			f.template = t
		}
	}
}

// ParseTemplate parses a --format template. Fields: .Type .Emoji .Time
// .Timestamp .Station .StationID .Genre .Language .Country .Volume .Error.
func ParseTemplate(tmpl string) (*template.Template, error) {
	if tmpl == "" {
		return nil, fmt.Errorf("empty template")
	}
	return template.New("format").Parse(tmpl)
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}
	parts = append(parts, f.eventDescription(e))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      EventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
	}

	if st := subject(e); st != nil {
		data.Station = st.Name
		data.StationID = st.ID
		data.Genre = st.Genre
		data.Language = st.Language
		data.Country = st.Country
	}
	if e.Current != nil {
		data.Volume = e.Current.VolumePercent()
		if e.Current.Err != nil {
			data.Error = e.Current.Err.Error()
		}
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Station   string
	StationID string
	Genre     string
	Language  string
	Country   string
	Volume    int
	Error     string
}

// subject is the snapshot that names the station an event is about. Events
// that end playback describe the station that was playing.
func subject(e Event) *core.Station {
	if e.Current.HasStation() {
		return e.Current.Station
	}
	if e.Previous.HasStation() {
		return e.Previous.Station
	}
	return nil
}

func (f *Formatter) eventDescription(e Event) string {
	name := "station"
	if st := subject(e); st != nil {
		name = st.Name
		if name == "" {
			name = st.ID
		}
	}

	switch e.Type {
	case EventTune:
		return fmt.Sprintf("Tuning in: %s", name)
	case EventReady:
		return fmt.Sprintf("Buffered: %s", name)
	case EventPlaying:
		if st := subject(e); st != nil {
			if detail := joinNonEmpty(", ", st.Language, st.Country); detail != "" {
				return fmt.Sprintf("Now playing: %s (%s)", name, detail)
			}
		}
		return fmt.Sprintf("Now playing: %s", name)
	case EventPause:
		return "Paused"
	case EventResume:
		return "Resumed"
	case EventStop:
		return fmt.Sprintf("Stopped: %s", name)
	case EventLoadFailed:
		return fmt.Sprintf("Could not load: %s", name)
	case EventError:
		if e.Current != nil && e.Current.Err != nil {
			return fmt.Sprintf("Error: %v", e.Current.Err)
		}
		return "Error"
	case EventVolumeChange:
		if e.Current != nil {
			return fmt.Sprintf("Volume: %d%%", e.Current.VolumePercent())
		}
		return "Volume changed"
	default:
		return "Unknown event"
	}
}

func eventEmoji(t EventType) string {
	switch t {
	case EventTune:
		return "📻"
	case EventReady:
		return "⏳"
	case EventPlaying:
		return "🎵"
	case EventPause:
		return "⏸️"
	case EventResume:
		return "▶️"
	case EventStop:
		return "⏹️"
	case EventLoadFailed:
		return "⚠️"
	case EventError:
		return "❌"
	case EventVolumeChange:
		return "🔊"
	default:
		return "❓"
	}
}

// EventTypeName returns the name of the event type.
func EventTypeName(t EventType) string {
	switch t {
	case EventTune:
		return "tune"
	case EventReady:
		return "ready"
	case EventPlaying:
		return "playing"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventStop:
		return "stop"
	case EventLoadFailed:
		return "load_failed"
	case EventError:
		return "error"
	case EventVolumeChange:
		return "volume_change"
	default:
		return "unknown"
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
