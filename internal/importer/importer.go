package importer

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/user/movie-catalog-go/internal/model"
	"github.com/user/movie-catalog-go/internal/store"
	"github.com/user/movie-catalog-go/internal/tmdb"
)

const (
	// maxCastMembers bounds how many top-billed actors are imported per movie
	maxCastMembers = 5
	// youtubeSite is the provider's site label for videos we keep
	youtubeSite = "YouTube"
	// youtubeWatchURL is the prefix trailer links are stored under
	youtubeWatchURL = "https://www.youtube.com/watch?v="
)

// Options controls a single import run
type Options struct {
	// Pages is the number of listing pages to walk (default 1)
	Pages int
	// Genre restricts the listing to one provider genre, by name
	Genre string
	// Industry overrides the per-movie industry heuristic
	Industry string
}

// Summary reports the outcome of a batch run. Failed identifiers are
// recorded so a caller can retry or inspect them; the batch itself never
// aborts on a single bad movie.
type Summary struct {
	Imported  int
	Failed    int
	FailedIDs []int
}

// Importer populates the catalog from the external metadata provider,
// one movie at a time, sequentially.
type Importer struct {
	store  store.Store
	client *tmdb.Client
	region string
}

// New creates an importer. region is the preferred country code for
// streaming availability (usually "US").
func New(s store.Store, c *tmdb.Client, region string) *Importer {
	return &Importer{store: s, client: c, region: region}
}

// Run executes one import batch: it resolves the target listing (popular, or
// discover when a genre or industry filter is present), walks the requested
// pages and imports each movie independently.
func (im *Importer) Run(ctx context.Context, opts Options) (*Summary, error) {
	pages := opts.Pages
	if pages < 1 {
		pages = 1
	}

	genreID := 0
	if opts.Genre != "" {
		id, err := im.resolveGenreID(ctx, opts.Genre)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			log.Warn().Str("genre", opts.Genre).Msg("Genre not known to provider, ignoring filter")
		}
		genreID = id
	}

	useDiscover := genreID != 0 || opts.Industry != ""
	summary := &Summary{}
	start := time.Now()

	for page := 1; page <= pages; page++ {
		var (
			listing *tmdb.MoviePage
			err     error
		)
		if useDiscover {
			log.Info().Int("page", page).Int("genreID", genreID).Msg("Fetching discover page")
			listing, err = im.client.DiscoverMovies(ctx, page, genreID)
		} else {
			log.Info().Int("page", page).Msg("Fetching popular page")
			listing, err = im.client.PopularMovies(ctx, page)
		}
		if err != nil {
			return summary, fmt.Errorf("failed to fetch listing page %d: %w", page, err)
		}

		for _, item := range listing.Results {
			if err := im.ImportMovie(ctx, item.ID, opts.Industry); err != nil {
				log.Error().Err(err).Int("tmdbID", item.ID).Msg("Failed to import movie")
				summary.Failed++
				summary.FailedIDs = append(summary.FailedIDs, item.ID)
				continue
			}
			summary.Imported++
		}
	}

	log.Info().
		Int("imported", summary.Imported).
		Int("failed", summary.Failed).
		Dur("duration", time.Since(start)).
		Msg("Import batch completed")

	return summary, nil
}

// ImportMovie fetches detail, credits, availability and video metadata for
// one movie and upserts it into the catalog. Writes already committed are
// not rolled back when a later step fails.
func (im *Importer) ImportMovie(ctx context.Context, tmdbID int, industryHint string) error {
	details, err := im.client.MovieDetails(ctx, tmdbID)
	if err != nil {
		return err
	}

	industry, err := im.store.FindOrCreateIndustry(ctx, ClassifyIndustry(details, industryHint))
	if err != nil {
		return err
	}

	movie := movieFromDetails(details)
	movie.IndustryID = &industry.ID
	if err := im.store.UpsertMovie(ctx, movie); err != nil {
		return err
	}

	for _, g := range details.Genres {
		if g.Name == "" {
			continue
		}
		genre, err := im.store.FindOrCreateGenre(ctx, g.Name)
		if err != nil {
			return err
		}
		if err := im.store.AddGenre(ctx, movie.ID, genre); err != nil {
			return err
		}
	}

	if err := im.importCast(ctx, movie.ID, tmdbID); err != nil {
		return err
	}
	if err := im.importAvailability(ctx, movie.ID, tmdbID); err != nil {
		return err
	}
	if err := im.importVideos(ctx, movie.ID, tmdbID); err != nil {
		return err
	}

	log.Info().Str("title", movie.Title).Int("tmdbID", tmdbID).Msg("Imported movie")
	return nil
}

// importCast associates the first five cast entries, in billing order
func (im *Importer) importCast(ctx context.Context, movieID uint, tmdbID int) error {
	credits, err := im.client.MovieCredits(ctx, tmdbID)
	if err != nil {
		return err
	}

	cast := credits.Cast
	if len(cast) > maxCastMembers {
		cast = cast[:maxCastMembers]
	}
	for _, member := range cast {
		if member.Name == "" {
			continue
		}
		person, err := im.store.FindOrCreatePerson(ctx, member.Name)
		if err != nil {
			return err
		}
		if err := im.store.AddCastMember(ctx, movieID, person); err != nil {
			return err
		}
	}
	return nil
}

// importAvailability upserts one availability row per flat-rate provider in
// the preferred country block, falling back to an arbitrary country when the
// preferred one is absent. Rows from earlier runs are kept even if the
// provider no longer reports them.
func (im *Importer) importAvailability(ctx context.Context, movieID uint, tmdbID int) error {
	providers, err := im.client.WatchProviders(ctx, tmdbID)
	if err != nil {
		return err
	}

	block, ok := providers.Results[im.region]
	if !ok {
		// Sorted country codes keep the fallback deterministic.
		codes := make([]string, 0, len(providers.Results))
		for code := range providers.Results {
			codes = append(codes, code)
		}
		if len(codes) == 0 {
			return nil
		}
		sort.Strings(codes)
		block = providers.Results[codes[0]]
	}

	for _, p := range block.Flatrate {
		if p.ProviderName == "" {
			continue
		}
		platform, err := im.store.FindOrCreatePlatform(ctx, p.ProviderName)
		if err != nil {
			return err
		}
		availability := &model.Availability{
			MovieID:     movieID,
			PlatformID:  platform.ID,
			IsAvailable: true,
		}
		if err := im.store.UpsertAvailability(ctx, availability); err != nil {
			return err
		}
	}
	return nil
}

// importVideos upserts a YouTube link for every promotional video hosted on
// YouTube, keyed on (movie, url) so re-imports do not duplicate.
func (im *Importer) importVideos(ctx context.Context, movieID uint, tmdbID int) error {
	videos, err := im.client.MovieVideos(ctx, tmdbID)
	if err != nil {
		return err
	}

	for _, v := range videos.Results {
		if v.Site != youtubeSite || v.Key == "" {
			continue
		}
		link := &model.YouTubeLink{
			MovieID:    movieID,
			URL:        youtubeWatchURL + v.Key,
			Title:      v.Name,
			IsOfficial: true,
		}
		if err := im.store.UpsertYouTubeLink(ctx, link); err != nil {
			return err
		}
	}
	return nil
}

// resolveGenreID maps a genre name to the provider's id via a
// case-insensitive exact match. Zero means unknown.
func (im *Importer) resolveGenreID(ctx context.Context, name string) (int, error) {
	list, err := im.client.GenreList(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve genre %q: %w", name, err)
	}
	for _, g := range list.Genres {
		if strings.EqualFold(g.Name, name) {
			return g.ID, nil
		}
	}
	return 0, nil
}

// movieFromDetails maps a provider detail payload onto the catalog schema.
// Missing numerics stay nil, missing popularity defaults to zero, and an
// unparseable release date is stored as NULL.
func movieFromDetails(d *tmdb.MovieDetails) *model.Movie {
	title := d.Title
	if title == "" {
		title = d.Name
	}
	if title == "" {
		title = "Untitled"
	}

	var releaseDate *time.Time
	if d.ReleaseDate != "" {
		if t, err := time.Parse("2006-01-02", d.ReleaseDate); err == nil {
			releaseDate = &t
		}
	}

	tmdbID := strconv.Itoa(d.ID)
	return &model.Movie{
		TmdbID:         &tmdbID,
		Title:          title,
		OriginalTitle:  d.OriginalTitle,
		Synopsis:       d.Overview,
		Overview:       d.Overview,
		ReleaseDate:    releaseDate,
		RuntimeMinutes: d.Runtime,
		PosterPath:     d.PosterPath,
		Popularity:     d.Popularity,
		VoteAverage:    d.VoteAverage,
		VoteCount:      d.VoteCount,
	}
}
