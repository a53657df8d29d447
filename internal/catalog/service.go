package catalog

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
	"github.com/Clark-Hu/movies-catalog/internal/metrics"
)

// PageSize is the fixed number of movies returned per search page.
const PageSize = 10

// Service composes the store, aggregator and matcher into the catalog operations.
type Service struct {
	store      Store
	aggregator *Aggregator
	logger     zerolog.Logger
}

// NewService wires a Service over store.
func NewService(store Store, maxRatingAttempts int, logger zerolog.Logger) *Service {
	return &Service{
		store:      store,
		aggregator: NewAggregator(store, maxRatingAttempts, logger),
		logger:     logger,
	}
}

// Detail returns the read projection of a movie using its cached average.
func (s *Service) Detail(ctx context.Context, movieID int64) (domain.MovieDetail, error) {
	movie, err := s.store.FindMovie(ctx, movieID)
	if err != nil {
		return domain.MovieDetail{}, fmt.Errorf("find movie %d: %w", movieID, err)
	}
	category, err := s.store.FindCategory(ctx, movie.CategoryID)
	if err != nil {
		return domain.MovieDetail{}, fmt.Errorf("find category %d: %w", movie.CategoryID, err)
	}

	comments := make([]string, 0, len(movie.Comments))
	for _, c := range movie.Comments {
		comments = append(comments, c.Text)
	}

	return domain.MovieDetail{
		Title:         movie.Title,
		Category:      category.Name,
		ReleaseDate:   movie.ReleaseDate,
		Description:   movie.Description,
		AverageRating: movie.AverageRating,
		Comments:      comments,
	}, nil
}

// Search returns one page of movies whose title contains title. Pages are 1-indexed.
func (s *Service) Search(ctx context.Context, title string, page int) ([]domain.Movie, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1", domain.ErrInvalidInput)
	}

	if page-1 > math.MaxInt/PageSize {
		return []domain.Movie{}, nil
	}

	movies, err := s.store.QueryMoviesByTitle(ctx, title, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	metrics.SearchResults.Observe(float64(len(movies)))
	return movies, nil
}

// Recommendations returns the movies matching the user's interested categories.
func (s *Service) Recommendations(ctx context.Context, userID int64) ([]domain.Movie, error) {
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	if len(user.InterestedCategoryIDs) == 0 {
		return []domain.Movie{}, nil
	}
	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return Recommend(user, movies), nil
}

// RecordRating stores a rating and returns the movie's new average.
func (s *Service) RecordRating(ctx context.Context, movieID, userID int64, score int) (float64, error) {
	return s.aggregator.RecordRating(ctx, movieID, userID, score)
}

// RecomputeRating rebuilds a movie's cached average from its stored ratings.
func (s *Service) RecomputeRating(ctx context.Context, movieID int64) (float64, error) {
	return s.aggregator.Recompute(ctx, movieID)
}

// NewMovie carries the fields required to add a movie.
type NewMovie struct {
	Title       string
	CategoryID  int64
	ReleaseDate time.Time
	Description string
}

// AddMovie adds a movie to the catalog. Its average starts at 0.
func (s *Service) AddMovie(ctx context.Context, in NewMovie) (domain.Movie, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Movie{}, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := s.requireCategory(ctx, in.CategoryID); err != nil {
		return domain.Movie{}, err
	}
	movie, err := s.store.CreateMovie(ctx, domain.Movie{
		Title:       in.Title,
		CategoryID:  in.CategoryID,
		ReleaseDate: in.ReleaseDate,
		Description: in.Description,
	})
	if err != nil {
		return domain.Movie{}, fmt.Errorf("create movie: %w", err)
	}
	s.logger.Info().Int64("movie_id", movie.ID).Str("title", movie.Title).Msg("movie added")
	return movie, nil
}

// AddComment appends a comment by userID to movieID.
func (s *Service) AddComment(ctx context.Context, movieID, userID int64, text string) (domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Comment{}, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}
	if _, err := s.store.FindMovie(ctx, movieID); err != nil {
		return domain.Comment{}, fmt.Errorf("find movie %d: %w", movieID, err)
	}
	if _, err := s.store.FindUser(ctx, userID); err != nil {
		return domain.Comment{}, fmt.Errorf("find user %d: %w", userID, err)
	}
	comment, err := s.store.CreateComment(ctx, domain.Comment{MovieID: movieID, UserID: userID, Text: text})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *Service) requireCategory(ctx context.Context, id int64) error {
	if _, err := s.store.FindCategory(ctx, id); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: invalid category id %d", domain.ErrInvalidInput, id)
		}
		return fmt.Errorf("find category %d: %w", id, err)
	}
	return nil
}
