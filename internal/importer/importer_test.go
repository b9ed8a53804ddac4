package importer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/user/movie-catalog-go/internal/config"
	"github.com/user/movie-catalog-go/internal/store"
	"github.com/user/movie-catalog-go/internal/tmdb"
)

// fakeTMDB serves a canned slice of the provider API and records which
// listing endpoints were hit.
type fakeTMDB struct {
	mu           sync.Mutex
	discoverHits []string
	popularHits  int
}

func (f *fakeTMDB) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`)
	})
	mux.HandleFunc("/movie/popular", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.popularHits++
		f.mu.Unlock()
		fmt.Fprint(w, `{"page":1,"results":[{"id":101,"title":"Funny One"},{"id":999,"title":"Broken One"}]}`)
	})
	mux.HandleFunc("/discover/movie", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.discoverHits = append(f.discoverHits, r.URL.Query().Get("with_genres"))
		f.mu.Unlock()
		fmt.Fprint(w, `{"page":1,"results":[{"id":101,"title":"Funny One"}]}`)
	})

	mux.HandleFunc("/movie/101", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"id": 101,
			"title": "Funny One",
			"original_title": "Funny One",
			"overview": "A comedy",
			"release_date": "2024-06-01",
			"runtime": 110,
			"poster_path": "/funny.jpg",
			"popularity": 10.0,
			"vote_average": 7.5,
			"vote_count": 1200,
			"original_language": "en",
			"production_countries": [{"iso_3166_1": "US"}],
			"genres": [{"id": 35, "name": "Comedy"}]
		}`)
	})
	mux.HandleFunc("/movie/101/credits", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cast":[
			{"name":"Actor One","order":0},
			{"name":"Actor Two","order":1},
			{"name":"Actor Three","order":2},
			{"name":"Actor Four","order":3},
			{"name":"Actor Five","order":4},
			{"name":"Actor Six","order":5}
		]}`)
	})
	mux.HandleFunc("/movie/101/watch/providers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":{
			"US":{"flatrate":[{"provider_name":"Netflix"}]},
			"GB":{"flatrate":[{"provider_name":"Sky"}]}
		}}`)
	})
	mux.HandleFunc("/movie/101/videos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[
			{"site":"YouTube","key":"abc123","name":"Official Trailer"},
			{"site":"Vimeo","key":"zzz","name":"Festival Cut"}
		]}`)
	})

	// Movie 999 only exists in the listing; every detail fetch fails.
	mux.HandleFunc("/movie/999", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"not found"}`, http.StatusNotFound)
	})

	return mux
}

func setupImporter(t *testing.T) (*Importer, store.Store, *fakeTMDB, func()) {
	t.Helper()

	fake := &fakeTMDB{}
	ts := httptest.NewServer(fake.handler())

	dbCfg := &config.DBConfig{
		Driver:   config.DriverSQLite,
		Path:     fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		MaxConns: 2,
	}
	st, err := store.NewGormStore(dbCfg)
	if err != nil {
		t.Fatalf("NewGormStore() error = %v", err)
	}

	client := tmdb.NewClient(&config.TMDBConfig{
		APIKey:      "test-key",
		BaseURL:     ts.URL,
		Language:    "en-US",
		WatchRegion: "US",
		RateLimit:   1000,
		Timeout:     5 * time.Second,
		MaxRetries:  0,
	})

	im := New(st, client, "US")
	cleanup := func() {
		st.Close()
		ts.Close()
	}
	return im, st, fake, cleanup
}

func TestImporter_Run_PartialFailure(t *testing.T) {
	im, st, fake, cleanup := setupImporter(t)
	defer cleanup()
	ctx := context.Background()

	summary, err := im.Run(ctx, Options{Pages: 1})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Imported != 1 || summary.Failed != 1 {
		t.Errorf("Summary = %+v, want 1 imported, 1 failed", summary)
	}
	if len(summary.FailedIDs) != 1 || summary.FailedIDs[0] != 999 {
		t.Errorf("FailedIDs = %v, want [999]", summary.FailedIDs)
	}
	if fake.popularHits != 1 {
		t.Errorf("popular listing fetched %d times, want 1", fake.popularHits)
	}

	movie, err := st.GetMovieByTmdbID(ctx, "101")
	if err != nil {
		t.Fatalf("GetMovieByTmdbID() error = %v", err)
	}
	if movie.Title != "Funny One" {
		t.Errorf("imported title = %q, want Funny One", movie.Title)
	}
	if movie.Industry == nil || movie.Industry.Name != IndustryHollywood {
		t.Errorf("imported industry = %+v, want Hollywood", movie.Industry)
	}
	if len(movie.Genres) != 1 || movie.Genres[0].Name != "Comedy" {
		t.Errorf("imported genres = %+v, want [Comedy]", movie.Genres)
	}
	if len(movie.Cast) != maxCastMembers {
		t.Errorf("imported cast count = %d, want %d", len(movie.Cast), maxCastMembers)
	}
	if len(movie.Availabilities) != 1 || movie.Availabilities[0].Platform.Name != "Netflix" {
		t.Errorf("imported availabilities = %+v, want Netflix from the US block", movie.Availabilities)
	}
	if len(movie.YouTubeLinks) != 1 {
		t.Fatalf("imported youtube links = %d, want 1 (non-YouTube entries skipped)", len(movie.YouTubeLinks))
	}
	if movie.YouTubeLinks[0].URL != youtubeWatchURL+"abc123" {
		t.Errorf("youtube link URL = %q, want %q", movie.YouTubeLinks[0].URL, youtubeWatchURL+"abc123")
	}
	if !movie.YouTubeLinks[0].IsOfficial {
		t.Error("imported youtube link should be marked official")
	}
}

func TestImporter_ReimportIsIdempotent(t *testing.T) {
	im, st, _, cleanup := setupImporter(t)
	defer cleanup()
	ctx := context.Background()

	if err := im.ImportMovie(ctx, 101, ""); err != nil {
		t.Fatalf("ImportMovie() error = %v", err)
	}
	if err := im.ImportMovie(ctx, 101, ""); err != nil {
		t.Fatalf("ImportMovie() second run error = %v", err)
	}

	count, err := st.CountMovies(ctx)
	if err != nil {
		t.Fatalf("CountMovies() error = %v", err)
	}
	if count != 1 {
		t.Errorf("movie count after re-import = %d, want 1", count)
	}

	movie, err := st.GetMovieByTmdbID(ctx, "101")
	if err != nil {
		t.Fatalf("GetMovieByTmdbID() error = %v", err)
	}
	if len(movie.Genres) != 1 {
		t.Errorf("genre count after re-import = %d, want 1", len(movie.Genres))
	}
	if len(movie.Cast) != maxCastMembers {
		t.Errorf("cast count after re-import = %d, want %d", len(movie.Cast), maxCastMembers)
	}
	if len(movie.Availabilities) != 1 {
		t.Errorf("availability count after re-import = %d, want 1", len(movie.Availabilities))
	}
	if len(movie.YouTubeLinks) != 1 {
		t.Errorf("youtube link count after re-import = %d, want 1", len(movie.YouTubeLinks))
	}
}

func TestImporter_GenreFilterUsesDiscover(t *testing.T) {
	im, _, fake, cleanup := setupImporter(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := im.Run(ctx, Options{Pages: 1, Genre: "action"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(fake.discoverHits) != 1 || fake.discoverHits[0] != "28" {
		t.Errorf("discover hits = %v, want one hit with with_genres=28", fake.discoverHits)
	}
	if fake.popularHits != 0 {
		t.Errorf("popular listing hit %d times, want 0 when a genre filter is set", fake.popularHits)
	}
}

func TestImporter_UnknownGenreFallsBackToPopular(t *testing.T) {
	im, _, fake, cleanup := setupImporter(t)
	defer cleanup()

	if _, err := im.Run(context.Background(), Options{Pages: 1, Genre: "No Such Genre"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fake.popularHits != 1 {
		t.Errorf("popular listing hit %d times, want 1 when the genre is unknown", fake.popularHits)
	}
	if len(fake.discoverHits) != 0 {
		t.Errorf("discover hits = %v, want none", fake.discoverHits)
	}
}

func TestImporter_IndustryHint(t *testing.T) {
	im, st, _, cleanup := setupImporter(t)
	defer cleanup()
	ctx := context.Background()

	if err := im.ImportMovie(ctx, 101, "bollywood"); err != nil {
		t.Fatalf("ImportMovie() error = %v", err)
	}

	movie, err := st.GetMovieByTmdbID(ctx, "101")
	if err != nil {
		t.Fatalf("GetMovieByTmdbID() error = %v", err)
	}
	if movie.Industry == nil || movie.Industry.Name != IndustryBollywood {
		t.Errorf("industry = %+v, want Bollywood from the hint", movie.Industry)
	}
}
