package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/user/movie-catalog-go/internal/config"
	"golang.org/x/time/rate"
)

// StatusError reports a non-success response from the provider. Handlers use
// it to translate provider failures into 502s.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb returned status %d", e.StatusCode)
}

// Client is a rate-limited HTTP client for the TMDb API. The credential and
// endpoint come from the explicit config struct, never from process globals.
type Client struct {
	cfg     *config.TMDBConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a TMDb client from the given configuration
func NewClient(cfg *config.TMDBConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
	}
}

// GenreList fetches the provider's movie genre catalog
func (c *Client) GenreList(ctx context.Context) (*GenreList, error) {
	var out GenreList
	if err := c.get(ctx, "/genre/movie/list", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch genre list: %w", err)
	}
	return &out, nil
}

// PopularMovies fetches one page of the provider's popular-movies listing
func (c *Client) PopularMovies(ctx context.Context, page int) (*MoviePage, error) {
	params := url.Values{"page": {strconv.Itoa(page)}}
	var out MoviePage
	if err := c.get(ctx, "/movie/popular", params, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch popular movies page %d: %w", page, err)
	}
	return &out, nil
}

// DiscoverMovies fetches one page of the discover listing, optionally
// filtered by a provider genre id.
func (c *Client) DiscoverMovies(ctx context.Context, page, genreID int) (*MoviePage, error) {
	params := url.Values{"page": {strconv.Itoa(page)}}
	if genreID != 0 {
		params.Set("with_genres", strconv.Itoa(genreID))
	}
	var out MoviePage
	if err := c.get(ctx, "/discover/movie", params, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch discover page %d: %w", page, err)
	}
	return &out, nil
}

// SearchMovies runs a free-text movie search
func (c *Client) SearchMovies(ctx context.Context, query string) (*MoviePage, error) {
	params := url.Values{"query": {query}}
	var out MoviePage
	if err := c.get(ctx, "/search/movie", params, &out); err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return &out, nil
}

// MovieDetails fetches the detail payload for a movie
func (c *Client) MovieDetails(ctx context.Context, tmdbID int) (*MovieDetails, error) {
	var out MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch details for movie %d: %w", tmdbID, err)
	}
	return &out, nil
}

// MovieCredits fetches the credits payload for a movie
func (c *Client) MovieCredits(ctx context.Context, tmdbID int) (*Credits, error) {
	var out Credits
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", tmdbID), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch credits for movie %d: %w", tmdbID, err)
	}
	return &out, nil
}

// WatchProviders fetches the per-country availability payload for a movie
func (c *Client) WatchProviders(ctx context.Context, tmdbID int) (*WatchProviderResult, error) {
	var out WatchProviderResult
	// The watch/providers endpoint rejects the language parameter.
	if err := c.getRaw(ctx, fmt.Sprintf("/movie/%d/watch/providers", tmdbID), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch watch providers for movie %d: %w", tmdbID, err)
	}
	return &out, nil
}

// MovieVideos fetches the promotional-video payload for a movie
func (c *Client) MovieVideos(ctx context.Context, tmdbID int) (*VideoList, error) {
	var out VideoList
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", tmdbID), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch videos for movie %d: %w", tmdbID, err)
	}
	return &out, nil
}

// PosterURL returns the full image URL for a poster path, or "" when unset
func PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w500" + posterPath
}

// get performs a localized API request
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("language", c.cfg.Language)
	return c.getRaw(ctx, path, params, out)
}

// getRaw performs a rate-limited GET with exponential-backoff retries and
// decodes the JSON response into out. Client errors (4xx) are not retried.
func (c *Client) getRaw(ctx context.Context, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.cfg.APIKey)
	targetURL := c.cfg.BaseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		retryable, err := c.fetch(ctx, targetURL, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}

		if attempt < c.cfg.MaxRetries {
			// Exponential backoff: 1s, 2s, 4s
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			log.Warn().Err(err).Str("path", path).Dur("backoff", backoff).Msg("TMDb request failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// fetch performs a single request. The bool reports whether the failure is
// worth retrying.
func (c *Client) fetch(ctx context.Context, targetURL string, out interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("create request error: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return true, fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode >= 500, &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response error: %w", err)
	}
	return false, nil
}
