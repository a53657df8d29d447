package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Clark-Hu/movies-catalog/internal/catalog"
	"github.com/Clark-Hu/movies-catalog/internal/config"
	"github.com/Clark-Hu/movies-catalog/internal/logging"
	"github.com/Clark-Hu/movies-catalog/internal/repository"
	"github.com/Clark-Hu/movies-catalog/internal/seed"
	"github.com/Clark-Hu/movies-catalog/internal/store"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	var (
		dbURL      = flag.String("db", os.Getenv("DB_URL"), "PostgreSQL connection string")
		data       = flag.String("data", "db/seed/catalog.json", "path to seed data file")
		migrations = flag.String("migrations", "db/migrations", "directory holding *.up.sql files")
		logLevel   = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logging.Init(logging.Config{Level: *logLevel, Format: "console"})
	logger := logging.Component("catalog-seed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *dbURL, *data, *migrations); err != nil {
		logger.Error().Err(err).Msg("seeding failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, dbURL, dataPath, migrationsDir string) error {
	if dbURL == "" {
		return errors.New("a database url is required (-db or DB_URL)")
	}
	logger := logging.Component("catalog-seed")

	payload, err := seed.ReadFile(dataPath)
	if err != nil {
		return err
	}

	st, err := store.New(ctx, dbURL, store.Options{
		ConnTimeout: 10 * time.Second,
		Logger:      logging.Component("store"),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer st.Close()

	applied, err := st.Migrate(ctx, migrationsDir)
	if err != nil {
		return err
	}
	logger.Info().Int("files", applied).Str("dir", migrationsDir).Msg("migrations applied")

	svc := catalog.NewService(repository.New(st), catalog.DefaultMaxAttempts, logging.Component("catalog"))
	if _, err := seed.Apply(ctx, svc, payload, logger); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}
