package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/user/movie-catalog-go/internal/model"
)

// Pagination properties: pages of any size partition the catalog ordering
// with no duplicates and no gaps, and every page respects its size bound.
func TestProperty_Pagination(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	const total = 30
	for i := 0; i < total; i++ {
		movie := &model.Movie{
			TmdbID:     strPtr(fmt.Sprintf("%d", 5000+i)),
			Title:      fmt.Sprintf("Movie %02d", i),
			Popularity: float64(i),
		}
		if err := s.UpsertMovie(ctx, movie); err != nil {
			t.Fatalf("UpsertMovie() error = %v", err)
		}
	}

	full, err := s.ListMovies(ctx, MovieFilter{PageSize: total})
	if err != nil {
		t.Fatalf("ListMovies() error = %v", err)
	}
	if len(full) != total {
		t.Fatalf("seeded %d movies, listed %d", total, len(full))
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	pageSizeGen := gen.IntRange(1, total)

	properties.Property("pages partition the full ordering", prop.ForAll(
		func(pageSize int) bool {
			seen := make(map[uint]bool)
			var walked []uint
			for page := 1; ; page++ {
				movies, err := s.ListMovies(ctx, MovieFilter{Page: page, PageSize: pageSize})
				if err != nil {
					return false
				}
				if len(movies) == 0 {
					break
				}
				if len(movies) > pageSize {
					return false
				}
				for _, m := range movies {
					if seen[m.ID] {
						return false
					}
					seen[m.ID] = true
					walked = append(walked, m.ID)
				}
			}

			if len(walked) != len(full) {
				return false
			}
			for i, id := range walked {
				if full[i].ID != id {
					return false
				}
			}
			return true
		},
		pageSizeGen,
	))

	properties.Property("a page never exceeds its size", prop.ForAll(
		func(page, pageSize int) bool {
			movies, err := s.ListMovies(ctx, MovieFilter{Page: page, PageSize: pageSize})
			if err != nil {
				return false
			}
			return len(movies) <= pageSize
		},
		gen.IntRange(1, total+5),
		pageSizeGen,
	))

	properties.TestingRun(t)
}
