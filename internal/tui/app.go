package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/dial/internal/core"
	"github.com/tessro/dial/internal/history"
	"github.com/tessro/dial/internal/tui/components"
	"github.com/tessro/dial/internal/tui/styles"
)

const (
	volumeStep   = 0.05
	historyLimit = 20
	errorTTL     = 5 * time.Second

	defaultRefresh = time.Second
)

// Player is the playback session the UI drives.
type Player interface {
	Play(station core.Station)
	Pause()
	Resume()
	Stop()
	SetVolume(v float64)
	Snapshot() core.Snapshot
	Subscribe(fn func(core.Snapshot)) (unsubscribe func())
}

// HistorySource provides recent plays for the history panel.
type HistorySource interface {
	Recent(ctx context.Context, limit int) ([]history.Play, error)
}

// App holds the TUI application state
type App struct {
	player   Player
	stations []core.Station
	history  HistorySource
	room     string
	theme    string
	refresh  time.Duration
}

// Option configures an App.
type Option func(*App)

// WithHistory enables the history panel.
func WithHistory(h HistorySource) Option {
	return func(a *App) {
		a.history = h
	}
}

// WithRoom sets the room name shown in the now playing panel.
func WithRoom(room string) Option {
	return func(a *App) {
		a.room = room
	}
}

// WithTheme selects a color theme.
func WithTheme(theme string) Option {
	return func(a *App) {
		a.theme = theme
	}
}

// WithRefresh sets how often the status bar is redrawn when nothing else
// changes.
func WithRefresh(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.refresh = d
		}
	}
}

// NewApp creates a new TUI application listing stations in the given order.
func NewApp(player Player, stations []core.Station, opts ...Option) *App {
	a := &App{
		player:   player,
		stations: stations,
		refresh:  defaultRefresh,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Model is the main TUI model
type Model struct {
	app     *App
	width   int
	height  int
	updates <-chan core.Snapshot

	// State
	snap    core.Snapshot
	visible []core.Station
	plays   []history.Play

	// Components
	stationsView *components.Stations
	nowPlaying   *components.NowPlaying
	historyView  *components.History
	keys         keyMap
	help         help.Model

	showHistory bool
	filtering   bool
	filter      textinput.Model

	lastError   error
	errorExpiry time.Time

	quitting bool
}

// NewModel creates a new TUI model. updates carries snapshots published by
// the player.
func NewModel(app *App, updates <-chan core.Snapshot) Model {
	ti := textinput.New()
	ti.Placeholder = "name, genre, language or country"
	ti.Prompt = "/ "
	ti.CharLimit = 60
	ti.Width = 40

	return Model{
		app:          app,
		updates:      updates,
		snap:         app.player.Snapshot(),
		visible:      app.stations,
		stationsView: components.NewStations(),
		nowPlaying:   components.NewNowPlaying(),
		historyView:  components.NewHistory(),
		keys:         defaultKeyMap(),
		help:         help.New(),
		filter:       ti,
	}
}

// Messages
type snapshotMsg core.Snapshot
type historyMsg []history.Play
type errMsg error
type tickMsg time.Time

// subscribe forwards snapshots into a channel that only ever holds the most
// recent one, so the publishing session never waits on the UI.
func subscribe(p Player) (<-chan core.Snapshot, func()) {
	ch := make(chan core.Snapshot, 1)
	unsub := p.Subscribe(func(s core.Snapshot) {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	})
	return ch, unsub
}

func waitForSnapshot(updates <-chan core.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg(s)
	}
}

func (m Model) fetchHistory() tea.Cmd {
	if m.app.history == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		plays, err := m.app.history.Recent(ctx, historyLimit)
		if err != nil {
			return errMsg(err)
		}
		return historyMsg(plays)
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.updates), m.tick())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		prev := m.snap
		m.snap = core.Snapshot(msg)
		if m.snap.Err != nil {
			m.showError(m.snap.Err)
		}
		cmds := []tea.Cmd{waitForSnapshot(m.updates)}
		// A finished play changes the history panel.
		if m.showHistory && prev.State != m.snap.State {
			cmds = append(cmds, m.fetchHistory())
		}
		return m, tea.Batch(cmds...)

	case historyMsg:
		m.plays = msg
		return m, nil

	case errMsg:
		m.showError(msg)
		return m, nil

	case tickMsg:
		if m.lastError != nil && time.Time(msg).After(m.errorExpiry) {
			m.lastError = nil
		}
		return m, m.tick()
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) showError(err error) {
	m.lastError = err
	m.errorExpiry = time.Now().Add(errorTTL)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.filtering {
		return m.handleFilterKeyPress(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Up):
		m.stationsView.SelectPrev()

	case key.Matches(msg, m.keys.Down):
		m.stationsView.SelectNext(len(m.visible))

	case key.Matches(msg, m.keys.Play):
		if st, ok := m.selected(); ok {
			return m, m.play(st)
		}

	case key.Matches(msg, m.keys.PauseResume):
		return m, m.pauseResume()

	case key.Matches(msg, m.keys.Stop):
		return m, m.act(m.app.player.Stop)

	case key.Matches(msg, m.keys.VolumeUp):
		return m, m.volume(volumeStep)

	case key.Matches(msg, m.keys.VolumeDown):
		return m, m.volume(-volumeStep)

	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		if m.showHistory {
			return m, m.fetchHistory()
		}
	}

	return m, nil
}

func (m Model) handleFilterKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.visible = m.app.stations
		m.stationsView.Reset()
		return m, nil

	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil

	case "up", "down":
		// Let the list move while the filter is open.
		if msg.String() == "up" {
			m.stationsView.SelectPrev()
		} else {
			m.stationsView.SelectNext(len(m.visible))
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.visible = filterStations(m.app.stations, m.filter.Value())
		m.stationsView.Reset()
	}
	return m, cmd
}

func (m Model) selected() (core.Station, bool) {
	i := m.stationsView.Selected()
	if i < 0 || i >= len(m.visible) {
		return core.Station{}, false
	}
	return m.visible[i], true
}

func (m Model) act(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func (m Model) play(st core.Station) tea.Cmd {
	return m.act(func() { m.app.player.Play(st) })
}

func (m Model) pauseResume() tea.Cmd {
	switch m.snap.State {
	case core.StatePlaying:
		return m.act(m.app.player.Pause)
	case core.StatePaused:
		return m.act(m.app.player.Resume)
	}
	return nil
}

func (m Model) volume(delta float64) tea.Cmd {
	v := core.ClampVolume(m.snap.Volume + delta)
	return m.act(func() { m.app.player.SetVolume(v) })
}

// filterStations keeps stations whose name, genre, language or country
// contains text, ignoring case.
func filterStations(stations []core.Station, text string) []core.Station {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return stations
	}
	var out []core.Station
	for _, st := range stations {
		for _, field := range []string{st.Name, st.Genre, st.Language, st.Country} {
			if strings.Contains(strings.ToLower(field), text) {
				out = append(out, st)
				break
			}
		}
	}
	return out
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(statusBar)

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 2

	stations := m.stationsView.Render(m.visible, m.snap.Station, m.filter.Value(), leftWidth-2, bodyHeight-2, !m.filtering)

	var right string
	if m.showHistory {
		topHeight := bodyHeight * 45 / 100
		nowPlaying := m.nowPlaying.Render(m.snap, m.app.room, rightWidth-2, topHeight-2)
		historyView := m.historyView.Render(m.plays, rightWidth-2, bodyHeight-topHeight-2, false)
		right = lipgloss.JoinVertical(lipgloss.Left, nowPlaying, historyView)
	} else {
		right = m.nowPlaying.Render(m.snap, m.app.room, rightWidth-2, bodyHeight-2)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, stations, right)

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.filtering:
		status = m.filter.View()
	case m.lastError != nil && time.Now().Before(m.errorExpiry):
		status = styles.Error.Render("Error: " + m.lastError.Error())
	default:
		status = m.help.View(m.keys)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

// Run starts the TUI application
func Run(app *App) error {
	styles.Use(app.theme)

	updates, unsub := subscribe(app.player)
	defer unsub()

	p := tea.NewProgram(NewModel(app, updates), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
