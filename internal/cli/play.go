package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tessro/dial/internal/core"
	dialerrors "github.com/tessro/dial/internal/errors"
	"github.com/tessro/dial/internal/session"
	"github.com/tessro/dial/internal/tail"
	"github.com/tessro/dial/internal/wizard"
)

var (
	playRoom      string
	playVolume    int
	playNoEmoji   bool
	playTimestamp bool
	playFormat    string
)

var playCmd = &cobra.Command{
	Use:   "play [station-id]",
	Short: "Play a station",
	Long: `Play a station on a Sonos room and follow what happens until Ctrl+C.

Without a station ID you can pick one from the stations recommended for
your country.

Format templates can use: {{.Type}} {{.Emoji}} {{.Time}} {{.Station}}
{{.StationID}} {{.Genre}} {{.Language}} {{.Country}} {{.Volume}} {{.Error}}

Examples:
  dial play somafm-groove-salad
  dial play bbc-world-service --room Kitchen --volume 30
  dial play radio-paradise --format '{{.Time}} {{.Type}} {{.Station}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playRoom, "room", "r", "", "Sonos room to play on")
	playCmd.Flags().IntVar(&playVolume, "volume", -1, "volume (0-100)")
	playCmd.Flags().BoolVar(&playNoEmoji, "no-emoji", false, "disable emoji output")
	playCmd.Flags().BoolVarP(&playTimestamp, "timestamp", "t", false, "show timestamps")
	playCmd.Flags().StringVarP(&playFormat, "format", "f", "", "custom format template")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playFormat != "" {
		if _, err := tail.ParseTemplate(playFormat); err != nil {
			return fmt.Errorf("invalid --format: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	station, err := pickStation(ctx, args)
	if err != nil {
		return err
	}

	r, err := findRoom(ctx, playRoom)
	if err != nil {
		return err
	}

	sess := newSession(newRenderer(r), playVolume)
	defer sess.Close()

	if store := openHistory(); store != nil {
		defer store.Close()
		defer defaultRecorder(store, sess)()
	}

	formatter := tail.NewFormatter(
		tail.WithEmoji(!playNoEmoji),
		tail.WithTimestamp(playTimestamp),
		tail.WithTemplate(playFormat),
	)
	watcher := tail.NewWatcher(sess, 32)
	defer watcher.Stop()

	if !JSONOutput() {
		fmt.Printf("Room: %s\n", r.name)
	}

	sess.Play(*station)
	return follow(ctx, sess, watcher, formatter)
}

// follow prints events until the user interrupts or playback ends on its
// own.
func follow(ctx context.Context, sess *session.Session, watcher *tail.Watcher, formatter *tail.Formatter) error {
	for {
		select {
		case <-ctx.Done():
			sess.Stop()
			drain(watcher, formatter)
			return nil

		case e, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			printEvent(e, formatter)

			switch e.Type {
			case tail.EventLoadFailed:
				return dialerrors.WithSuggestion(
					fmt.Errorf("%w: %s", dialerrors.ErrStreamUnreachable, stationName(e.Previous)),
					"The station may be offline. Try another one with 'dial recommend', or set playback.fallback = \"ordered\"")
			case tail.EventError:
				return e.Current.Err
			case tail.EventStop:
				return nil
			}
		}
	}
}

// drain prints whatever the final Stop produced.
func drain(watcher *tail.Watcher, formatter *tail.Formatter) {
	for {
		select {
		case e, ok := <-watcher.Events():
			if !ok {
				return
			}
			printEvent(e, formatter)
		default:
			return
		}
	}
}

func printEvent(e tail.Event, formatter *tail.Formatter) {
	if JSONOutput() {
		_ = printJSON(map[string]any{
			"type":     tail.EventTypeName(e.Type),
			"at":       e.Timestamp,
			"snapshot": e.Current,
		})
		return
	}
	fmt.Println(formatter.Format(e))
}

func stationName(s *core.Snapshot) string {
	if s.HasStation() {
		return s.Station.Name
	}
	return "station"
}

// pickStation looks up the station named in args, or offers the stations
// recommended for the user's country.
func pickStation(ctx context.Context, args []string) (*core.Station, error) {
	c, err := openCatalog()
	if err != nil {
		return nil, err
	}

	if !wizard.NeedsStation(args) {
		st, err := c.Lookup(args[0])
		if err != nil {
			return nil, dialerrors.WithSuggestion(err, "Run 'dial stations' to see available station IDs")
		}
		return &st, nil
	}

	rec := newRecommender(c)
	country := resolveCountry(ctx, rec, "", true)
	stations := orderForCountry(c, rec, country)

	picked, err := wizard.NewInteractive().PromptStation("Stations for "+country, stations)
	if err != nil {
		return nil, err
	}
	if picked == nil {
		return nil, dialerrors.WithSuggestion(
			fmt.Errorf("%w: no station given", dialerrors.ErrStationNotFound),
			"Pass a station ID, e.g. 'dial play somafm-groove-salad'")
	}
	return picked, nil
}
