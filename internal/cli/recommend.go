package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tessro/dial/internal/core"
)

var (
	recommendCountry  string
	recommendLanguage string
	recommendAuto     bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend stations for a country",
	Long: `Recommend stations for a country and, optionally, a language.

Without --country the configured location.country is used. With --auto the
country is detected from your IP address; if detection fails or takes too
long, the default country is used. Without --language, stations are listed
in the order of the languages most spoken in the country.

Examples:
  dial recommend --auto
  dial recommend --country India --language Telugu`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendCountry, "country", "", "country to recommend for")
	recommendCmd.Flags().StringVarP(&recommendLanguage, "language", "l", "", "only stations in this language")
	recommendCmd.Flags().BoolVarP(&recommendAuto, "auto", "a", false, "detect country from your location")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	rec := newRecommender(c)

	country := resolveCountry(cmd.Context(), rec, recommendCountry, recommendAuto)

	var stations []core.Station
	if recommendLanguage != "" {
		stations = rec.Recommend(country, recommendLanguage)
	} else {
		stations = rec.ForCountry(country)
	}

	if JSONOutput() {
		return printJSON(map[string]any{
			"country":   country,
			"languages": rec.PreferredLanguages(country),
			"stations":  stations,
		})
	}

	fmt.Printf("Country: %s\n", country)
	if recommendLanguage == "" {
		fmt.Printf("Languages: %s\n", strings.Join(rec.PreferredLanguages(country), ", "))
	}
	fmt.Println()

	if len(stations) == 0 {
		fmt.Println("No stations found. Try 'dial stations countries' to see what's available.")
		return nil
	}
	writeStations(os.Stdout, stations)
	return nil
}
