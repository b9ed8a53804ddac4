package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/user/movie-catalog-go/internal/config"
	"github.com/user/movie-catalog-go/internal/importer"
	"github.com/user/movie-catalog-go/internal/store"
	"github.com/user/movie-catalog-go/internal/tmdb"
)

func main() {
	pages := flag.Int("pages", 1, "number of listing pages to fetch")
	genre := flag.String("genre", "", "discover by genre name (e.g. Comedy)")
	industry := flag.String("industry", "", "industry override (Bollywood/Hollywood/Tollywood)")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if cfg.TMDB.APIKey == "" {
		log.Fatal().Msg("TMDB_API_KEY not set in environment or .env")
	}

	catalogStore, err := store.NewGormStore(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := catalogStore.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database connection")
		}
	}()

	im := importer.New(catalogStore, tmdb.NewClient(&cfg.TMDB), cfg.TMDB.WatchRegion)

	summary, err := im.Run(context.Background(), importer.Options{
		Pages:    *pages,
		Genre:    *genre,
		Industry: *industry,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Import batch aborted")
	}

	log.Info().
		Int("imported", summary.Imported).
		Int("failed", summary.Failed).
		Ints("failedIDs", summary.FailedIDs).
		Msg("Import finished")

	if summary.Imported == 0 && summary.Failed > 0 {
		os.Exit(1)
	}
}
