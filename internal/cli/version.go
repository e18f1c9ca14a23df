package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tessro/dial/internal/catalog"
)

// Overridden with -ldflags "-X github.com/tessro/dial/internal/cli.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Stations  int    `json:"builtin_stations"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Stations:  catalog.Default().Len(),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersion()
		if JSONOutput() {
			return printJSON(info)
		}

		fmt.Printf("dial %s\n", info.Version)
		if Verbose() {
			fmt.Printf("  commit:    %s (built %s)\n", info.Commit, info.BuildDate)
			fmt.Printf("  go:        %s on %s\n", info.GoVersion, info.Platform)
			fmt.Printf("  stations:  %d built in\n", info.Stations)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
