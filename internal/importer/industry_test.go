package importer

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/user/movie-catalog-go/internal/tmdb"
)

func detailsWith(lang string, countries ...string) *tmdb.MovieDetails {
	d := &tmdb.MovieDetails{OriginalLanguage: lang}
	for _, c := range countries {
		d.ProductionCountries = append(d.ProductionCountries, tmdb.ProductionCountry{ISO3166: c})
	}
	return d
}

func TestClassifyIndustry(t *testing.T) {
	tests := []struct {
		name    string
		details *tmdb.MovieDetails
		hint    string
		want    string
	}{
		{"hindi is bollywood", detailsWith("hi", "IN"), "", IndustryBollywood},
		{"telugu is tollywood", detailsWith("te", "IN"), "", IndustryTollywood},
		{"tamil is tollywood", detailsWith("ta", "IN"), "", IndustryTollywood},
		{"indian production defaults to bollywood", detailsWith("ml", "IN"), "", IndustryBollywood},
		{"us production is hollywood", detailsWith("fr", "US"), "", IndustryHollywood},
		{"english original is hollywood", detailsWith("en"), "", IndustryHollywood},
		{"hindi without country still bollywood", detailsWith("hi"), "", IndustryBollywood},
		{"korean production is other", detailsWith("ko", "KR"), "", IndustryOther},
		{"no signals is other", detailsWith(""), "", IndustryOther},
		{"hint overrides heuristic", detailsWith("en", "US"), "Nollywood", "Nollywood"},
		{"hint is canonicalized", detailsWith("ko", "KR"), "BOLLYWOOD", IndustryBollywood},
		{"lowercase hint is canonicalized", detailsWith("ko", "KR"), "tollywood", IndustryTollywood},
		{"blank hint falls through", detailsWith("en", "US"), "   ", IndustryHollywood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyIndustry(tt.details, tt.hint); got != tt.want {
				t.Errorf("ClassifyIndustry() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Classification properties: without a hint the result is always one of the
// four canonical names, and a non-blank hint always wins in canonical form.
func TestProperty_IndustryClassification(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	langGen := gen.OneConstOf("hi", "te", "ta", "en", "fr", "ko", "ml", "")
	countryGen := gen.OneConstOf("IN", "US", "KR", "FR", "GB", "")

	properties.Property("unhinted result is a canonical industry", prop.ForAll(
		func(lang, country string) bool {
			var d *tmdb.MovieDetails
			if country == "" {
				d = detailsWith(lang)
			} else {
				d = detailsWith(lang, country)
			}
			switch ClassifyIndustry(d, "") {
			case IndustryBollywood, IndustryTollywood, IndustryHollywood, IndustryOther:
				return true
			}
			return false
		},
		langGen,
		countryGen,
	))

	properties.Property("hint wins regardless of case", prop.ForAll(
		func(lang string, hint string) bool {
			if hint == "" {
				return true
			}
			got := ClassifyIndustry(detailsWith(lang), hint)
			return got == capitalize(hint)
		},
		langGen,
		gen.OneConstOf("bollywood", "TOLLYWOOD", "Hollywood", "nollywood", "other"),
	))

	properties.TestingRun(t)
}
