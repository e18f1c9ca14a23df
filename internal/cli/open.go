package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessro/dial/internal/browser"
	dialerrors "github.com/tessro/dial/internal/errors"
)

var openCmd = &cobra.Command{
	Use:   "open <station-id>",
	Short: "Open a station's website",
	Long:  `Open the homepage of a station in your default browser.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	st, err := c.Lookup(args[0])
	if err != nil {
		return dialerrors.WithSuggestion(err, "Run 'dial stations' to see available station IDs")
	}
	if st.Homepage == "" {
		return fmt.Errorf("%s has no homepage", st.Name)
	}

	if JSONOutput() {
		return printJSON(map[string]string{"station": st.ID, "url": st.Homepage})
	}
	fmt.Printf("Opening %s\n", st.Homepage)
	return browser.Open(st.Homepage)
}
