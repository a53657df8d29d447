package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

// The methods below let *Repository serve as the catalog's Store.

// FindMovie returns a movie with its ratings and comments.
func (r *Repository) FindMovie(ctx context.Context, id int64) (domain.Movie, error) {
	movie, err := r.Movies.GetByID(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}
	if movie.Ratings, err = r.Ratings.ListByMovie(ctx, id); err != nil {
		return domain.Movie{}, err
	}
	if movie.Comments, err = r.Comments.ListByMovie(ctx, id); err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

// FindUser returns a user with interests and comment ids.
func (r *Repository) FindUser(ctx context.Context, id int64) (domain.User, error) {
	return r.Users.GetByID(ctx, id)
}

// FindCategory returns a category.
func (r *Repository) FindCategory(ctx context.Context, id int64) (domain.Category, error) {
	return r.Categories.GetByID(ctx, id)
}

// QueryMoviesByTitle returns one window of title matches ordered by id.
func (r *Repository) QueryMoviesByTitle(ctx context.Context, text string, limit, offset int) ([]domain.Movie, error) {
	return r.Movies.SearchByTitle(ctx, text, limit, offset)
}

// ListMovies returns every movie ordered by id.
func (r *Repository) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	return r.Movies.List(ctx)
}

// UpdateMovieRatings locks the movie row, applies fn and persists new ratings
// together with the aggregate in one transaction.
func (r *Repository) UpdateMovieRatings(ctx context.Context, id int64, fn func(*domain.Movie) error) (domain.Movie, error) {
	var out domain.Movie
	err := r.store.InTx(ctx, func(tx pgx.Tx) error {
		movies := &MoviesRepository{db: tx}
		ratings := &RatingsRepository{db: tx}

		movie, err := movies.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if movie.Ratings, err = ratings.ListByMovie(ctx, id); err != nil {
			return err
		}
		if err := fn(&movie); err != nil {
			return err
		}
		for i := range movie.Ratings {
			if movie.Ratings[i].ID != 0 {
				continue
			}
			movie.Ratings[i].MovieID = id
			created, err := ratings.Insert(ctx, movie.Ratings[i])
			if err != nil {
				return fmt.Errorf("insert rating: %w", err)
			}
			movie.Ratings[i] = created
		}
		if err := movies.SetAverage(ctx, id, movie.AverageRating); err != nil {
			return fmt.Errorf("set average: %w", err)
		}
		out = movie
		return nil
	})
	if err != nil {
		return domain.Movie{}, translateError(err)
	}
	return out, nil
}

// CreateMovie stores a movie.
func (r *Repository) CreateMovie(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	return r.Movies.Create(ctx, movie)
}

// CreateComment stores a comment.
func (r *Repository) CreateComment(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	return r.Comments.Create(ctx, comment)
}

// CreateCategory stores a category.
func (r *Repository) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	return r.Categories.Create(ctx, name)
}

// ListCategories returns every category.
func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return r.Categories.List(ctx)
}

// CreateUser stores a user and their interests atomically.
func (r *Repository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	var out domain.User
	err := r.store.InTx(ctx, func(tx pgx.Tx) error {
		created, err := (&UsersRepository{db: tx}).Create(ctx, user)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.User{}, translateError(err)
	}
	return out, nil
}

// ListUsers returns every user.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	return r.Users.List(ctx)
}

// DeleteUser removes a user.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	return r.Users.Delete(ctx, id)
}
