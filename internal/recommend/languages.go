package recommend

import "strings"

// countryLanguages maps a country to its languages, most preferred first.
var countryLanguages = map[string][]string{
	"India":                {"Hindi", "English", "Bengali", "Telugu", "Marathi", "Tamil", "Urdu", "Gujarati", "Kannada", "Malayalam", "Punjabi"},
	"Pakistan":             {"Urdu", "English", "Punjabi"},
	"Bangladesh":           {"Bengali", "English"},
	"Nepal":                {"Nepali", "Hindi", "English"},
	"Sri Lanka":            {"Sinhala", "Tamil", "English"},
	"United States":        {"English", "Spanish"},
	"United Kingdom":       {"English"},
	"Canada":               {"English", "French"},
	"Australia":            {"English"},
	"New Zealand":          {"English", "Maori"},
	"Ireland":              {"English", "Irish"},
	"France":               {"French"},
	"Germany":              {"German"},
	"Austria":              {"German"},
	"Switzerland":          {"German", "French", "Italian"},
	"Spain":                {"Spanish", "Catalan"},
	"Mexico":               {"Spanish"},
	"Argentina":            {"Spanish"},
	"Brazil":               {"Portuguese"},
	"Portugal":             {"Portuguese"},
	"Italy":                {"Italian"},
	"Japan":                {"Japanese"},
	"China":                {"Chinese"},
	"South Korea":          {"Korean"},
	"United Arab Emirates": {"Arabic", "English", "Hindi", "Malayalam"},
	"Saudi Arabia":         {"Arabic"},
	"Singapore":            {"English", "Chinese", "Malay", "Tamil"},
	"Malaysia":             {"Malay", "English", "Chinese", "Tamil"},
}

var fallbackLanguages = []string{"English"}

// PreferredLanguages returns the languages of country, most preferred
// first. Unknown countries get ["English"]. The country name is matched
// without regard to case.
func PreferredLanguages(country string) []string {
	langs, ok := countryLanguages[country]
	if !ok {
		for name, l := range countryLanguages {
			if strings.EqualFold(name, country) {
				langs, ok = l, true
				break
			}
		}
	}
	if !ok {
		langs = fallbackLanguages
	}
	return append([]string(nil), langs...)
}
