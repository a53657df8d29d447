// Package catalog holds the rating aggregation, category matching and query
// logic of the movie catalog. It depends only on the Store contract and knows
// nothing about SQL or HTTP.
package catalog

import (
	"context"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

// Store is the persistence contract consumed by the catalog. Lookups return
// domain.ErrNotFound when the entity is absent.
type Store interface {
	// FindMovie returns the movie with its ratings and comments loaded.
	FindMovie(ctx context.Context, id int64) (domain.Movie, error)
	FindUser(ctx context.Context, id int64) (domain.User, error)
	FindCategory(ctx context.Context, id int64) (domain.Category, error)

	// QueryMoviesByTitle returns movies whose title contains text, ordered by id.
	// Collections are not loaded.
	QueryMoviesByTitle(ctx context.Context, text string, limit, offset int) ([]domain.Movie, error)
	// ListMovies returns every movie ordered by id. Collections are not loaded.
	ListMovies(ctx context.Context) ([]domain.Movie, error)

	// UpdateMovieRatings loads the movie with its ratings while holding the
	// movie's serialization point, applies fn, then persists ratings that have
	// no ID yet together with the aggregate. Nothing is written if fn fails.
	UpdateMovieRatings(ctx context.Context, id int64, fn func(*domain.Movie) error) (domain.Movie, error)

	CreateMovie(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	CreateComment(ctx context.Context, comment domain.Comment) (domain.Comment, error)

	CreateCategory(ctx context.Context, name string) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)

	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
