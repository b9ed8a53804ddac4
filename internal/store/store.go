package store

import (
	"context"
	"errors"

	"github.com/user/movie-catalog-go/internal/model"
)

// Sentinel errors returned by query operations so handlers can map them to
// HTTP statuses without depending on the storage engine.
var (
	// ErrNotFound means the requested record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrGenreNotFound means a genre referenced by name does not exist
	ErrGenreNotFound = errors.New("genre not found")
)

// Default pagination applied by ListMovies when the filter leaves them zero
const (
	DefaultPage     = 1
	DefaultPageSize = 24
)

// DefaultTrendingLimit caps Trending results when the filter leaves it zero
const DefaultTrendingLimit = 12

// RecommendLimit caps Recommend results
const RecommendLimit = 20

// MovieFilter narrows ListMovies. All textual filters are case-insensitive;
// Industry and Genre match exactly, Actor and Query match substrings.
type MovieFilter struct {
	Industry string
	Genre    string
	Actor    string
	Query    string
	Page     int
	PageSize int
}

// TrendingFilter narrows Trending. SortTopRated orders by vote average before
// popularity; the default orders by popularity first.
type TrendingFilter struct {
	Genre        string
	Industry     string
	Limit        int
	SortTopRated bool
}

// Store defines the interface for catalog persistence and read queries
type Store interface {
	// Lookup-or-create by natural key (name)
	FindOrCreateIndustry(ctx context.Context, name string) (*model.Industry, error)
	FindOrCreateGenre(ctx context.Context, name string) (*model.Genre, error)
	FindOrCreatePerson(ctx context.Context, name string) (*model.Person, error)
	FindOrCreatePlatform(ctx context.Context, name string) (*model.Platform, error)

	// Import write path
	UpsertMovie(ctx context.Context, movie *model.Movie) error
	AddGenre(ctx context.Context, movieID uint, genre *model.Genre) error
	AddCastMember(ctx context.Context, movieID uint, person *model.Person) error
	UpsertAvailability(ctx context.Context, availability *model.Availability) error
	UpsertYouTubeLink(ctx context.Context, link *model.YouTubeLink) error
	UpsertRating(ctx context.Context, rating *model.Rating) error

	// Read path
	ListMovies(ctx context.Context, filter MovieFilter) ([]*model.Movie, error)
	GetMovie(ctx context.Context, id uint) (*model.Movie, error)
	GetMovieByTmdbID(ctx context.Context, tmdbID string) (*model.Movie, error)
	BestInGenre(ctx context.Context, genre string) (*model.Movie, error)
	Recommend(ctx context.Context, genres, actors []string) ([]*model.Movie, error)
	Trending(ctx context.Context, filter TrendingFilter) ([]*model.Movie, error)
	ListGenres(ctx context.Context) ([]*model.Genre, error)
	ListIndustries(ctx context.Context) ([]*model.Industry, error)
	CountMovies(ctx context.Context) (int64, error)

	// Health check
	Ping(ctx context.Context) error
	Close() error
}
