package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movies-catalog/internal/catalog"
	"github.com/Clark-Hu/movies-catalog/internal/config"
	httpserver "github.com/Clark-Hu/movies-catalog/internal/http"
	"github.com/Clark-Hu/movies-catalog/internal/logging"
	"github.com/Clark-Hu/movies-catalog/internal/memstore"
	"github.com/Clark-Hu/movies-catalog/internal/repository"
	"github.com/Clark-Hu/movies-catalog/internal/store"
)

// backend bundles the catalog store with its health probe and release hook.
type backend struct {
	store  catalog.Store
	health httpserver.HealthChecker
	close  func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger := logging.Component("movies-api")

	be, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer be.close()

	svc := catalog.NewService(be.store, cfg.RatingMaxRetries, logging.Component("catalog"))
	server := httpserver.New(cfg, be.health, svc, logging.Component("http"))

	logger.Info().Str("port", cfg.Port).Bool("memory_store", cfg.UsesMemoryStore()).Msg("starting server")

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("server error")
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	logger.Info().Msg("server stopped")
}

func openBackend(ctx context.Context, cfg config.Config) (backend, error) {
	if cfg.UsesMemoryStore() {
		st := memstore.New()
		return backend{store: st, health: st, close: func() {}}, nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.New(dbCtx, cfg.DBURL, storeOptions(cfg, logging.Component("store")))
	if err != nil {
		return backend{}, fmt.Errorf("connect database: %w", err)
	}
	logger := logging.Component("store")
	return backend{
		store:  repository.New(st),
		health: st,
		close: func() {
			logPoolStats(logger, st)
			st.Close()
		},
	}, nil
}

func storeOptions(cfg config.Config, logger zerolog.Logger) store.Options {
	return store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}
}

func logPoolStats(logger zerolog.Logger, st *store.Store) {
	stat := st.Stats()
	if stat == nil {
		return
	}
	logger.Info().
		Int32("total_conns", stat.TotalConns()).
		Int32("idle_conns", stat.IdleConns()).
		Int64("acquire_count", stat.AcquireCount()).
		Dur("acquire_duration", stat.AcquireDuration()).
		Msg("pool stats at shutdown")
}
