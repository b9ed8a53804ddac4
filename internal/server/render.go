package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/user/movie-catalog-go/internal/model"
	"github.com/user/movie-catalog-go/internal/tmdb"
)

// Projection functions mapping catalog entities onto response shapes. Each is
// a pure function; the JSON field set mirrors the public API contract.

// GenreResponse is the API shape for a genre
type GenreResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IndustryResponse is the API shape for an industry
type IndustryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PersonResponse is the API shape for a cast member
type PersonResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AvailabilityResponse is the API shape for streaming availability
type AvailabilityResponse struct {
	Platform    string `json:"platform"`
	URL         string `json:"url"`
	IsAvailable bool   `json:"is_available"`
}

// YouTubeLinkResponse is the API shape for a trailer link
type YouTubeLinkResponse struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	IsOfficial bool   `json:"is_official"`
}

// MovieResponse is the full API shape for a catalog movie
type MovieResponse struct {
	ID             uint                   `json:"id"`
	TmdbID         *string                `json:"tmdb_id"`
	Title          string                 `json:"title"`
	OriginalTitle  string                 `json:"original_title"`
	Overview       string                 `json:"overview"`
	ReleaseDate    *string                `json:"release_date"`
	PosterPath     string                 `json:"poster_path"`
	VoteAverage    *float64               `json:"vote_average"`
	VoteCount      *int                   `json:"vote_count"`
	Popularity     float64                `json:"popularity"`
	Genres         []GenreResponse        `json:"genres"`
	Cast           []PersonResponse       `json:"cast"`
	Availabilities []AvailabilityResponse `json:"availabilities"`
	YouTubeLinks   []YouTubeLinkResponse  `json:"youtube_links"`
}

// ExternalMovieResponse is the simplified shape for provider search results
// that are not (yet) in the catalog.
type ExternalMovieResponse struct {
	External    bool   `json:"external"`
	TmdbID      int    `json:"tmdb_id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
}

// RatingResponse is the API shape returned after rating a movie
type RatingResponse struct {
	ID      uint    `json:"id"`
	MovieID uint    `json:"movie_id"`
	Score   float64 `json:"score"`
	Review  string  `json:"review"`
}

// errorResponse is the uniform error body
type errorResponse struct {
	Detail string `json:"detail"`
}

// renderMovie projects a movie and its loaded relations
func renderMovie(m *model.Movie) MovieResponse {
	resp := MovieResponse{
		ID:             m.ID,
		TmdbID:         m.TmdbID,
		Title:          m.Title,
		OriginalTitle:  m.OriginalTitle,
		Overview:       m.Overview,
		PosterPath:     m.PosterPath,
		VoteAverage:    m.VoteAverage,
		VoteCount:      m.VoteCount,
		Popularity:     m.Popularity,
		Genres:         make([]GenreResponse, 0, len(m.Genres)),
		Cast:           make([]PersonResponse, 0, len(m.Cast)),
		Availabilities: make([]AvailabilityResponse, 0, len(m.Availabilities)),
		YouTubeLinks:   make([]YouTubeLinkResponse, 0, len(m.YouTubeLinks)),
	}

	if m.ReleaseDate != nil {
		d := m.ReleaseDate.Format("2006-01-02")
		resp.ReleaseDate = &d
	}
	for _, g := range m.Genres {
		resp.Genres = append(resp.Genres, GenreResponse{ID: g.ID, Name: g.Name})
	}
	for _, p := range m.Cast {
		resp.Cast = append(resp.Cast, PersonResponse{ID: p.ID, Name: p.Name})
	}
	for _, a := range m.Availabilities {
		resp.Availabilities = append(resp.Availabilities, AvailabilityResponse{
			Platform:    a.Platform.Name,
			URL:         a.URL,
			IsAvailable: a.IsAvailable,
		})
	}
	for _, l := range m.YouTubeLinks {
		resp.YouTubeLinks = append(resp.YouTubeLinks, YouTubeLinkResponse{
			Title:      l.Title,
			URL:        l.URL,
			IsOfficial: l.IsOfficial,
		})
	}
	return resp
}

// renderMovies projects a movie list, always yielding a JSON array
func renderMovies(movies []*model.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, renderMovie(m))
	}
	return out
}

// renderExternalMovie projects a provider search result
func renderExternalMovie(item tmdb.MovieSummary) ExternalMovieResponse {
	title := item.Title
	if title == "" {
		title = item.Name
	}
	return ExternalMovieResponse{
		External:    true,
		TmdbID:      item.ID,
		Title:       title,
		PosterPath:  item.PosterPath,
		ReleaseDate: item.ReleaseDate,
		Overview:    item.Overview,
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError writes the uniform error body
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
