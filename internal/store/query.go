package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/user/movie-catalog-go/internal/model"
	"gorm.io/gorm"
)

// defaultOrder is the catalog-wide movie ordering: most popular first, vote
// average and recency as tie-breaks, row id last so ties stay deterministic.
const defaultOrder = "movies.popularity DESC, movies.vote_average DESC, movies.release_date DESC, movies.id ASC"

// rankedOrder ranks by audience score before popularity (best-in-genre,
// recommendations, top_rated trending).
const rankedOrder = "movies.vote_average DESC, movies.popularity DESC, movies.id ASC"

// withMovieRelations preloads everything the movie response shape needs
func withMovieRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Industry").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name ASC") }).
		Preload("Cast").
		Preload("Availabilities.Platform").
		Preload("YouTubeLinks")
}

// joinGenres joins the genre tables onto a movie query
func joinGenres(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
		Joins("JOIN genres ON genres.id = movie_genres.genre_id")
}

// joinCast joins the cast tables onto a movie query
func joinCast(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN movie_cast ON movie_cast.movie_id = movies.id").
		Joins("JOIN people ON people.id = movie_cast.person_id")
}

// ListMovies returns movies matching the filter, deduplicated and ordered by
// the catalog default, sliced by offset pagination. The slice is not a stable
// cursor; concurrent imports can shift pages between requests.
func (s *GormStore) ListMovies(ctx context.Context, filter MovieFilter) ([]*model.Movie, error) {
	page := filter.Page
	if page < 1 {
		page = DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	tx := s.db.WithContext(ctx).Model(&model.Movie{})

	if filter.Industry != "" {
		tx = tx.Joins("JOIN industries ON industries.id = movies.industry_id").
			Where("LOWER(industries.name) = LOWER(?)", filter.Industry)
	}
	if filter.Genre != "" {
		tx = joinGenres(tx).Where("LOWER(genres.name) = LOWER(?)", filter.Genre)
	}
	if filter.Actor != "" {
		tx = joinCast(tx).Where("LOWER(people.name) LIKE ?", "%"+strings.ToLower(filter.Actor)+"%")
	}
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		tx = tx.Where(
			"LOWER(movies.title) LIKE ? OR LOWER(movies.original_title) LIKE ? OR LOWER(movies.overview) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var movies []*model.Movie
	err := withMovieRelations(tx.Distinct("movies.*")).
		Order(defaultOrder).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// GetMovie retrieves a single movie with all relations, or ErrNotFound
func (s *GormStore) GetMovie(ctx context.Context, id uint) (*model.Movie, error) {
	var movie model.Movie
	err := withMovieRelations(s.db.WithContext(ctx)).First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return &movie, nil
}

// GetMovieByTmdbID retrieves a movie by its external identifier, or ErrNotFound
func (s *GormStore) GetMovieByTmdbID(ctx context.Context, tmdbID string) (*model.Movie, error) {
	var movie model.Movie
	err := withMovieRelations(s.db.WithContext(ctx)).Where("tmdb_id = ?", tmdbID).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie by tmdb id: %w", err)
	}
	return &movie, nil
}

// BestInGenre returns the single highest-ranked movie of a genre, by vote
// average then popularity. ErrGenreNotFound when the genre does not exist,
// ErrNotFound when it has no movies.
func (s *GormStore) BestInGenre(ctx context.Context, genre string) (*model.Movie, error) {
	var g model.Genre
	err := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", genre).First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to look up genre: %w", err)
	}

	var movie model.Movie
	err = withMovieRelations(
		s.db.WithContext(ctx).Model(&model.Movie{}).
			Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
			Where("movie_genres.genre_id = ?", g.ID),
	).Order(rankedOrder).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find best movie in genre: %w", err)
	}
	return &movie, nil
}

// Recommend returns up to RecommendLimit movies matching any of the genre
// names and any of the actor-name substrings. When both filters are given a
// movie must satisfy both. Results are ranked by vote average then popularity.
func (s *GormStore) Recommend(ctx context.Context, genres, actors []string) ([]*model.Movie, error) {
	tx := s.db.WithContext(ctx).Model(&model.Movie{})

	if len(genres) > 0 {
		lowered := make([]string, 0, len(genres))
		for _, g := range genres {
			lowered = append(lowered, strings.ToLower(strings.TrimSpace(g)))
		}
		tx = joinGenres(tx).Where("LOWER(genres.name) IN ?", lowered)
	}
	if len(actors) > 0 {
		conds := make([]string, 0, len(actors))
		args := make([]interface{}, 0, len(actors))
		for _, a := range actors {
			conds = append(conds, "LOWER(people.name) LIKE ?")
			args = append(args, "%"+strings.ToLower(strings.TrimSpace(a))+"%")
		}
		tx = joinCast(tx).Where(strings.Join(conds, " OR "), args...)
	}

	var movies []*model.Movie
	err := withMovieRelations(tx.Distinct("movies.*")).
		Order(rankedOrder).
		Limit(RecommendLimit).
		Find(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to recommend movies: %w", err)
	}
	return movies, nil
}

// Trending returns the top movies for optional genre/industry filters,
// ordered by popularity (default) or vote average (top rated).
func (s *GormStore) Trending(ctx context.Context, filter TrendingFilter) ([]*model.Movie, error) {
	limit := filter.Limit
	if limit < 1 {
		limit = DefaultTrendingLimit
	}

	tx := s.db.WithContext(ctx).Model(&model.Movie{})
	if filter.Genre != "" {
		tx = joinGenres(tx).Where("LOWER(genres.name) = LOWER(?)", filter.Genre)
	}
	if filter.Industry != "" {
		tx = tx.Joins("JOIN industries ON industries.id = movies.industry_id").
			Where("LOWER(industries.name) = LOWER(?)", filter.Industry)
	}

	order := "movies.popularity DESC, movies.vote_average DESC, movies.id ASC"
	if filter.SortTopRated {
		order = rankedOrder
	}

	var movies []*model.Movie
	err := withMovieRelations(tx.Distinct("movies.*")).
		Order(order).
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trending movies: %w", err)
	}
	return movies, nil
}

// ListGenres returns all genres ordered by name
func (s *GormStore) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	var genres []*model.Genre
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// ListIndustries returns all industries
func (s *GormStore) ListIndustries(ctx context.Context) ([]*model.Industry, error) {
	var industries []*model.Industry
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&industries).Error; err != nil {
		return nil, fmt.Errorf("failed to list industries: %w", err)
	}
	return industries, nil
}

// CountMovies returns the total count of movies
func (s *GormStore) CountMovies(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Movie{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}
