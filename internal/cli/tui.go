package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/dial/internal/tui"
)

var (
	tuiRoom    string
	tuiCountry string
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"ui"},
	Short:   "Launch interactive radio",
	Long: `Launch the interactive terminal radio.

The dashboard provides:
  • Stations - the catalog, stations for your country first
  • Now Playing - station, state and volume
  • History - recently played stations (h)

Keyboard shortcuts:
  ↑/↓, j/k     Move
  Enter        Play selected station (again to pause/resume)
  Space        Pause/Resume
  s            Stop
  +/-          Volume up/down
  /            Filter stations
  h            Toggle history
  ?            Help
  q, Ctrl+C    Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiRoom, "room", "r", "", "Sonos room to play on")
	tuiCmd.Flags().StringVar(&tuiCountry, "country", "", "list this country's stations first")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := openCatalog()
	if err != nil {
		return err
	}
	rec := newRecommender(c)
	country := resolveCountry(ctx, rec, tuiCountry, true)

	r, err := findRoom(ctx, tuiRoom)
	if err != nil {
		return err
	}

	sess := newSession(newRenderer(r), -1)
	defer sess.Close()

	opts := []tui.Option{
		tui.WithRoom(r.name),
		tui.WithTheme(cfg.TUI.Theme),
		tui.WithRefresh(time.Duration(cfg.TUI.RefreshInterval) * time.Millisecond),
	}

	if store := openHistory(); store != nil {
		defer store.Close()
		defer defaultRecorder(store, sess)()
		opts = append(opts, tui.WithHistory(store))
	}

	err = tui.Run(tui.NewApp(sess, orderForCountry(c, rec, country), opts...))
	sess.Stop()
	return err
}
