// Command seed wipes the domain tables and loads fixture data.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/Dosada05/soccer-tournament/config"
	"github.com/Dosada05/soccer-tournament/db"
	"github.com/Dosada05/soccer-tournament/repositories"
	"github.com/Dosada05/soccer-tournament/seed"
)

func main() {
	file := flag.String("file", "", "YAML fixtures file (default: built-in fixtures)")
	migrate := flag.Bool("migrate", true, "create missing tables before seeding")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	fixtures, err := loadFixtures(*file)
	if err != nil {
		logger.Error("failed to read fixtures", slog.String("file", *file), slog.Any("error", err))
		os.Exit(1)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *migrate {
		if err := db.EnsureSchema(ctx, dbConn); err != nil {
			logger.Error("failed to apply schema", slog.Any("error", err))
			os.Exit(1)
		}
	}

	err = seed.Apply(ctx, repositories.NewTransactor(dbConn), repositories.NewPostgresFixtureRepository(dbConn), fixtures, logger)
	if err != nil {
		logger.Error("seeding failed, nothing was written", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database seeded")
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.Load(f)
}
