package tmdb

// Response shapes for the subset of the TMDb v3 API the catalog consumes.
// Fields the importer treats as nullable are pointers so a missing value is
// distinguishable from zero.

// MovieSummary is one entry of a paged movie listing or search result
type MovieSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
}

// MoviePage is a paged listing (popular, discover, search)
type MoviePage struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []MovieSummary `json:"results"`
}

// GenreRef is a provider-side genre
type GenreRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList is the provider's full genre catalog
type GenreList struct {
	Genres []GenreRef `json:"genres"`
}

// ProductionCountry is a country a movie was produced in
type ProductionCountry struct {
	ISO3166 string `json:"iso_3166_1"`
	Name    string `json:"name"`
}

// MovieDetails is the full detail payload for a single movie
type MovieDetails struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title"`
	Name                string              `json:"name"`
	OriginalTitle       string              `json:"original_title"`
	OriginalLanguage    string              `json:"original_language"`
	Overview            string              `json:"overview"`
	ReleaseDate         string              `json:"release_date"`
	Runtime             *int                `json:"runtime"`
	PosterPath          string              `json:"poster_path"`
	Popularity          float64             `json:"popularity"`
	VoteAverage         *float64            `json:"vote_average"`
	VoteCount           *int                `json:"vote_count"`
	Genres              []GenreRef          `json:"genres"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
}

// CastMember is one credited actor, in provider-supplied billing order
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// Credits is the credits payload for a movie
type Credits struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
}

// WatchProvider is a single streaming provider entry
type WatchProvider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
}

// CountryProviders groups the providers available in one country
type CountryProviders struct {
	Link     string          `json:"link"`
	Flatrate []WatchProvider `json:"flatrate"`
}

// WatchProviderResult maps ISO country codes to their provider blocks
type WatchProviderResult struct {
	ID      int                         `json:"id"`
	Results map[string]CountryProviders `json:"results"`
}

// Video is a promotional video attached to a movie
type Video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// VideoList is the videos payload for a movie
type VideoList struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}
