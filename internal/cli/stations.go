package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tessro/dial/internal/catalog"
	"github.com/tessro/dial/internal/core"
)

var (
	stationsGenre    string
	stationsLanguage string
	stationsCountry  string
	stationsSearch   string
)

var stationsCmd = &cobra.Command{
	Use:     "stations",
	Aliases: []string{"ls"},
	Short:   "List radio stations",
	Long: `List the stations in the catalog. Filters match case-insensitively
on part of the value and can be combined.

Examples:
  dial stations --language tamil
  dial stations --country india --genre news
  dial stations --search groove`,
	Args: cobra.NoArgs,
	RunE: runStations,
}

var stationsCountriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries stations are from",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDistinct((*catalog.Catalog).DistinctCountries)
	},
}

var stationsLanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages stations broadcast in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDistinct((*catalog.Catalog).DistinctLanguages)
	},
}

var stationsGenresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List station genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDistinct((*catalog.Catalog).DistinctGenres)
	},
}

func init() {
	stationsCmd.Flags().StringVarP(&stationsGenre, "genre", "g", "", "filter by genre")
	stationsCmd.Flags().StringVarP(&stationsLanguage, "language", "l", "", "filter by language")
	stationsCmd.Flags().StringVar(&stationsCountry, "country", "", "filter by country")
	stationsCmd.Flags().StringVarP(&stationsSearch, "search", "s", "", "search names, descriptions and genres")

	stationsCmd.AddCommand(stationsCountriesCmd)
	stationsCmd.AddCommand(stationsLanguagesCmd)
	stationsCmd.AddCommand(stationsGenresCmd)
	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}

	stations := filterCatalog(c, stationFilter{
		Genre:    stationsGenre,
		Language: stationsLanguage,
		Country:  stationsCountry,
		Search:   stationsSearch,
	})

	if JSONOutput() {
		return printJSON(stations)
	}
	if len(stations) == 0 {
		fmt.Println("No stations match")
		return nil
	}
	writeStations(os.Stdout, stations)
	return nil
}

type stationFilter struct {
	Genre    string
	Language string
	Country  string
	Search   string
}

// filterCatalog applies every non-empty field of f.
func filterCatalog(c *catalog.Catalog, f stationFilter) []core.Station {
	matches := func(field, text string) bool {
		return text == "" || strings.Contains(strings.ToLower(field), strings.ToLower(text))
	}

	var searchIDs map[string]bool
	if f.Search != "" {
		searchIDs = make(map[string]bool)
		for _, st := range c.Search(f.Search) {
			searchIDs[st.ID] = true
		}
	}

	return c.Filter(func(st core.Station) bool {
		if searchIDs != nil && !searchIDs[st.ID] {
			return false
		}
		return matches(st.Genre, f.Genre) &&
			matches(st.Language, f.Language) &&
			matches(st.Country, f.Country)
	})
}

func runDistinct(list func(*catalog.Catalog) []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}

	values := list(c)
	if JSONOutput() {
		return printJSON(values)
	}
	for _, v := range values {
		fmt.Println(v)
	}
	return nil
}
