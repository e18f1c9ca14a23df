package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	dialerrors "github.com/tessro/dial/internal/errors"
	"github.com/tessro/dial/internal/history"
)

var (
	historyLimit int
	historyTop   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played stations",
	Long: `Show stations played with 'dial play' and 'dial tui', newest first.
With --top, show the most played stations instead.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries")
	historyCmd.Flags().BoolVar(&historyTop, "top", false, "show most played stations")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.History.Disabled {
		return dialerrors.WithSuggestion(fmt.Errorf("play history is disabled"), "Set history.disabled = false in your config")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if historyTop {
		counts, err := store.MostPlayed(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if JSONOutput() {
			return printJSON(counts)
		}
		t := NewTable("STATION", "PLAYS", "LAST PLAYED")
		for _, c := range counts {
			t.Row(c.StationName, fmt.Sprint(c.Plays), c.LastPlayed.Local().Format("2006-01-02 15:04"))
		}
		t.Flush()
		return nil
	}

	plays, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if JSONOutput() {
		return printJSON(plays)
	}
	if len(plays) == 0 {
		fmt.Println("No plays yet")
		return nil
	}

	t := NewTable("STARTED", "STATION", "COUNTRY", "LENGTH")
	for _, p := range plays {
		length := "playing"
		if !p.EndedAt.IsZero() {
			length = FormatDuration(p.Duration())
		}
		t.Row(p.StartedAt.Local().Format("2006-01-02 15:04"), p.StationName, p.Country, length)
	}
	t.Flush()
	return nil
}
