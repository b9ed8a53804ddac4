package importer

import (
	"strings"

	"github.com/user/movie-catalog-go/internal/tmdb"
)

// Canonical industry names produced by the heuristic
const (
	IndustryBollywood = "Bollywood"
	IndustryTollywood = "Tollywood"
	IndustryHollywood = "Hollywood"
	IndustryOther     = "Other"
)

// ClassifyIndustry resolves the industry name for a movie. An explicit hint
// wins outright and is canonicalized by capitalization; otherwise the
// original language and production countries decide:
// Hindi is Bollywood, Telugu/Tamil are Tollywood, any other Indian production
// falls back to Bollywood, US productions and English originals are
// Hollywood, everything else is Other.
func ClassifyIndustry(details *tmdb.MovieDetails, hint string) string {
	if h := strings.TrimSpace(hint); h != "" {
		return capitalize(h)
	}

	producedIn := func(code string) bool {
		for _, c := range details.ProductionCountries {
			if c.ISO3166 == code {
				return true
			}
		}
		return false
	}

	lang := details.OriginalLanguage
	if producedIn("IN") || lang == "hi" || lang == "te" || lang == "ta" {
		switch lang {
		case "hi":
			return IndustryBollywood
		case "te", "ta":
			return IndustryTollywood
		}
		return IndustryBollywood
	}
	if producedIn("US") || lang == "en" {
		return IndustryHollywood
	}
	return IndustryOther
}

// capitalize lowercases the name and uppercases the first letter, so hints
// like "BOLLYWOOD" and "bollywood" land on the same industry row.
func capitalize(s string) string {
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
