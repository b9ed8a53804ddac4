package store

import (
	"context"
	"fmt"

	"github.com/user/movie-catalog-go/internal/model"
	"gorm.io/gorm/clause"
)

// The find-or-create methods rely on the uniqueness constraint plus an
// insert-on-conflict rather than check-then-insert, so concurrent creators
// of the same name converge on a single row.

// FindOrCreateIndustry returns the industry with the given name, creating it
// if absent.
func (s *GormStore) FindOrCreateIndustry(ctx context.Context, name string) (*model.Industry, error) {
	industry := model.Industry{Name: name}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&industry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create industry: %w", err)
	}
	// The insert was a no-op when the row already existed, leaving ID unset.
	if industry.ID == 0 {
		if err := s.db.WithContext(ctx).Where("name = ?", name).First(&industry).Error; err != nil {
			return nil, fmt.Errorf("failed to look up industry: %w", err)
		}
	}
	return &industry, nil
}

// FindOrCreateGenre returns the genre with the given name, creating it if absent
func (s *GormStore) FindOrCreateGenre(ctx context.Context, name string) (*model.Genre, error) {
	genre := model.Genre{Name: name}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&genre).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	if genre.ID == 0 {
		if err := s.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error; err != nil {
			return nil, fmt.Errorf("failed to look up genre: %w", err)
		}
	}
	return &genre, nil
}

// FindOrCreatePerson returns the person with the given name, creating them if
// absent. Person names are not unique in the schema, so an existing row is
// matched first and the insert only happens when none exists.
func (s *GormStore) FindOrCreatePerson(ctx context.Context, name string) (*model.Person, error) {
	var person model.Person
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&person).Error
	if err == nil {
		return &person, nil
	}
	person = model.Person{Name: name}
	if err := s.db.WithContext(ctx).Create(&person).Error; err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}
	return &person, nil
}

// FindOrCreatePlatform returns the platform with the given name, creating it
// if absent.
func (s *GormStore) FindOrCreatePlatform(ctx context.Context, name string) (*model.Platform, error) {
	platform := model.Platform{Name: name}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&platform).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create platform: %w", err)
	}
	if platform.ID == 0 {
		if err := s.db.WithContext(ctx).Where("name = ?", name).First(&platform).Error; err != nil {
			return nil, fmt.Errorf("failed to look up platform: %w", err)
		}
	}
	return &platform, nil
}

// UpsertMovie inserts or updates a movie keyed on its external tmdb_id,
// refreshing every descriptive and ranking field. Movies without an external
// id are plainly inserted.
func (s *GormStore) UpsertMovie(ctx context.Context, movie *model.Movie) error {
	if movie.TmdbID == nil {
		if err := s.db.WithContext(ctx).Create(movie).Error; err != nil {
			return fmt.Errorf("failed to create movie: %w", err)
		}
		return nil
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tmdb_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "original_title", "synopsis", "overview", "release_date",
			"runtime_minutes", "poster_path", "popularity", "vote_average",
			"vote_count", "industry_id", "updated_at",
		}),
	}).Create(movie).Error
	if err != nil {
		return fmt.Errorf("failed to upsert movie: %w", err)
	}

	// On the update path some drivers do not report the row id back.
	if movie.ID == 0 {
		var existing model.Movie
		if err := s.db.WithContext(ctx).Where("tmdb_id = ?", *movie.TmdbID).First(&existing).Error; err != nil {
			return fmt.Errorf("failed to look up upserted movie: %w", err)
		}
		movie.ID = existing.ID
	}
	return nil
}

// AddGenre associates a genre with a movie. Adding the same genre twice is a
// no-op; existing associations are never removed.
func (s *GormStore) AddGenre(ctx context.Context, movieID uint, genre *model.Genre) error {
	movie := model.Movie{ID: movieID}
	if err := s.db.WithContext(ctx).Model(&movie).Association("Genres").Append(genre); err != nil {
		return fmt.Errorf("failed to add genre to movie: %w", err)
	}
	return nil
}

// AddCastMember associates a person with a movie's cast, additively
func (s *GormStore) AddCastMember(ctx context.Context, movieID uint, person *model.Person) error {
	movie := model.Movie{ID: movieID}
	if err := s.db.WithContext(ctx).Model(&movie).Association("Cast").Append(person); err != nil {
		return fmt.Errorf("failed to add cast member to movie: %w", err)
	}
	return nil
}

// UpsertAvailability inserts or refreshes the availability row for a
// (movie, platform) pair. Only the availability flag is overwritten so a
// manually curated URL survives re-imports.
func (s *GormStore) UpsertAvailability(ctx context.Context, availability *model.Availability) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "movie_id"}, {Name: "platform_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_available"}),
	}).Create(availability).Error
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}
	return nil
}

// UpsertYouTubeLink inserts or refreshes a trailer link keyed on (movie, url)
func (s *GormStore) UpsertYouTubeLink(ctx context.Context, link *model.YouTubeLink) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "movie_id"}, {Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "is_official"}),
	}).Create(link).Error
	if err != nil {
		return fmt.Errorf("failed to upsert youtube link: %w", err)
	}
	return nil
}

// UpsertRating inserts or replaces a user's rating for a movie. Anonymous
// ratings (nil user) are not deduplicated; the unique index ignores NULLs.
func (s *GormStore) UpsertRating(ctx context.Context, rating *model.Rating) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "review"}),
	}).Create(rating).Error
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}
