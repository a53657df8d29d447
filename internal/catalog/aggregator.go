package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
	"github.com/Clark-Hu/movies-catalog/internal/metrics"
)

// DefaultMaxAttempts bounds how often a conflicting rating write is attempted.
const DefaultMaxAttempts = 3

// Aggregator keeps each movie's cached average consistent with its ratings.
type Aggregator struct {
	store       Store
	maxAttempts int
	logger      zerolog.Logger
}

// NewAggregator constructs an Aggregator. maxAttempts <= 0 selects DefaultMaxAttempts.
func NewAggregator(store Store, maxAttempts int, logger zerolog.Logger) *Aggregator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Aggregator{store: store, maxAttempts: maxAttempts, logger: logger}
}

// RecordRating appends a rating to the movie and returns the recomputed average.
func (a *Aggregator) RecordRating(ctx context.Context, movieID, userID int64, score int) (float64, error) {
	if score < domain.MinScore || score > domain.MaxScore {
		return 0, fmt.Errorf("%w: score %d outside [%d, %d]", domain.ErrInvalidInput, score, domain.MinScore, domain.MaxScore)
	}
	if _, err := a.store.FindUser(ctx, userID); err != nil {
		return 0, fmt.Errorf("find user %d: %w", userID, err)
	}

	movie, err := a.update(ctx, movieID, func(m *domain.Movie) error {
		m.Ratings = append(m.Ratings, domain.Rating{MovieID: m.ID, UserID: userID, Score: score})
		m.AverageRating = domain.MeanScore(m.Ratings)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("record rating for movie %d: %w", movieID, err)
	}
	metrics.RatingsRecorded.Inc()
	a.logger.Debug().
		Int64("movie_id", movieID).
		Int64("user_id", userID).
		Int("score", score).
		Float64("average", movie.AverageRating).
		Int("ratings", len(movie.Ratings)).
		Msg("rating recorded")
	return movie.AverageRating, nil
}

// Recompute rebuilds the cached average from the stored ratings.
func (a *Aggregator) Recompute(ctx context.Context, movieID int64) (float64, error) {
	movie, err := a.update(ctx, movieID, func(m *domain.Movie) error {
		m.AverageRating = domain.MeanScore(m.Ratings)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("recompute rating for movie %d: %w", movieID, err)
	}
	return movie.AverageRating, nil
}

func (a *Aggregator) update(ctx context.Context, movieID int64, fn func(*domain.Movie) error) (domain.Movie, error) {
	var lastErr error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		start := time.Now()
		movie, err := a.store.UpdateMovieRatings(ctx, movieID, fn)
		metrics.ObserveAggregateWrite(start)
		if err == nil {
			return movie, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return domain.Movie{}, err
		}
		metrics.RatingConflicts.Inc()
		a.logger.Warn().Err(err).Int64("movie_id", movieID).Int("attempt", attempt).Msg("aggregate write conflict")
		lastErr = err
		if ctx.Err() != nil {
			return domain.Movie{}, ctx.Err()
		}
	}
	return domain.Movie{}, fmt.Errorf("after %d attempts: %w", a.maxAttempts, lastErr)
}
