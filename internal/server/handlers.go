package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/user/movie-catalog-go/internal/model"
	"github.com/user/movie-catalog-go/internal/store"
)

// handleListMovies lists the catalog with optional industry/genre/actor
// filters, free-text search and offset pagination.
func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.MovieFilter{
		Industry: q.Get("industry"),
		Genre:    q.Get("genre"),
		Actor:    q.Get("actor"),
		Query:    q.Get("q"),
		Page:     intParam(q, "page", store.DefaultPage),
		PageSize: intParam(q, "page_size", store.DefaultPageSize),
	}

	movies, err := s.store.ListMovies(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list movies")
		writeError(w, http.StatusInternalServerError, "Failed to list movies")
		return
	}
	writeJSON(w, http.StatusOK, renderMovies(movies))
}

// handleMovieDetail returns a single movie by id
func (s *Server) handleMovieDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Movie not found")
		return
	}

	movie, err := s.store.GetMovie(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Movie not found")
			return
		}
		log.Error().Err(err).Uint64("id", id).Msg("Failed to get movie")
		writeError(w, http.StatusInternalServerError, "Failed to get movie")
		return
	}
	writeJSON(w, http.StatusOK, renderMovie(movie))
}

// rateRequest is the body accepted by handleRateMovie
type rateRequest struct {
	Score  float64 `json:"score"`
	Review string  `json:"review"`
	UserID *uint   `json:"user_id"`
}

// handleRateMovie upserts a rating for a movie. The 1.0-5.0 score range is
// enforced here at the API boundary, not in the data layer.
func (s *Server) handleRateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Movie not found")
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Score < 1.0 || req.Score > 5.0 {
		writeError(w, http.StatusBadRequest, "Score must be between 1.0 and 5.0")
		return
	}

	if _, err := s.store.GetMovie(r.Context(), uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Movie not found")
			return
		}
		log.Error().Err(err).Uint64("id", id).Msg("Failed to get movie")
		writeError(w, http.StatusInternalServerError, "Failed to get movie")
		return
	}

	rating := &model.Rating{
		UserID:  req.UserID,
		MovieID: uint(id),
		Score:   req.Score,
		Review:  req.Review,
	}
	if err := s.store.UpsertRating(r.Context(), rating); err != nil {
		log.Error().Err(err).Uint64("movieID", id).Msg("Failed to save rating")
		writeError(w, http.StatusInternalServerError, "Failed to save rating")
		return
	}

	writeJSON(w, http.StatusCreated, RatingResponse{
		ID:      rating.ID,
		MovieID: rating.MovieID,
		Score:   rating.Score,
		Review:  rating.Review,
	})
}

// handleBestInGenre returns the single best movie of a genre
func (s *Server) handleBestInGenre(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")
	if genre == "" {
		writeError(w, http.StatusBadRequest, "Provide ?genre=Name")
		return
	}

	movie, err := s.store.BestInGenre(r.Context(), genre)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrGenreNotFound):
			writeError(w, http.StatusNotFound, "Genre not found")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "No movie found for that genre")
		default:
			log.Error().Err(err).Str("genre", genre).Msg("Failed to find best movie")
			writeError(w, http.StatusInternalServerError, "Failed to find best movie")
		}
		return
	}
	writeJSON(w, http.StatusOK, renderMovie(movie))
}

// handleRecommend returns movies matching comma-separated genre names and/or
// actor-name substrings; both filters together intersect.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	genres := splitParam(q.Get("genres"))
	actors := splitParam(q.Get("actors"))

	movies, err := s.store.Recommend(r.Context(), genres, actors)
	if err != nil {
		log.Error().Err(err).Msg("Failed to recommend movies")
		writeError(w, http.StatusInternalServerError, "Failed to recommend movies")
		return
	}
	writeJSON(w, http.StatusOK, renderMovies(movies))
}

// handleListGenres returns the full genre listing
func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.store.ListGenres(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list genres")
		writeError(w, http.StatusInternalServerError, "Failed to list genres")
		return
	}

	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, GenreResponse{ID: g.ID, Name: g.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleListIndustries returns the full industry listing
func (s *Server) handleListIndustries(w http.ResponseWriter, r *http.Request) {
	industries, err := s.store.ListIndustries(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list industries")
		writeError(w, http.StatusInternalServerError, "Failed to list industries")
		return
	}

	out := make([]IndustryResponse, 0, len(industries))
	for _, i := range industries {
		out = append(out, IndustryResponse{ID: i.ID, Name: i.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleExternalSearch proxies a free-text search to the provider and
// returns the simplified external shape.
func (s *Server) handleExternalSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Provide ?q=search-term")
		return
	}
	if s.tmdbCfg.APIKey == "" {
		writeError(w, http.StatusInternalServerError, "TMDB_API_KEY not configured")
		return
	}

	page, err := s.tmdb.SearchMovies(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("TMDb search failed")
		writeError(w, http.StatusBadGateway, "TMDB error")
		return
	}

	out := make([]ExternalMovieResponse, 0, len(page.Results))
	for _, item := range page.Results {
		out = append(out, renderExternalMovie(item))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleTrending returns top movies for optional genre/industry filters,
// sorted by popularity or vote average.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.TrendingFilter{
		Genre:        q.Get("genre"),
		Industry:     q.Get("industry"),
		Limit:        intParam(q, "limit", store.DefaultTrendingLimit),
		SortTopRated: q.Get("type") == "top_rated",
	}

	movies, err := s.store.Trending(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list trending movies")
		writeError(w, http.StatusInternalServerError, "Failed to list trending movies")
		return
	}
	writeJSON(w, http.StatusOK, renderMovies(movies))
}

// handleTMDBPopular proxies the provider's popular listing for the UI
func (s *Server) handleTMDBPopular(w http.ResponseWriter, r *http.Request) {
	if s.tmdbCfg.APIKey == "" {
		writeError(w, http.StatusInternalServerError, "TMDB_API_KEY not configured")
		return
	}

	page, err := s.tmdb.PopularMovies(r.Context(), 1)
	if err != nil {
		log.Error().Err(err).Msg("TMDb popular listing failed")
		writeError(w, http.StatusBadGateway, "TMDB error")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// intParam parses an integer query parameter, falling back to a default when
// absent or malformed.
func intParam(q url.Values, name string, fallback int) int {
	raw := q.Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// splitParam splits a comma-separated parameter into trimmed, non-empty parts
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
