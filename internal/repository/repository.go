package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
	"github.com/Clark-Hu/movies-catalog/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = domain.ErrNotFound

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository aggregates all domain-specific repositories.
type Repository struct {
	store      *store.Store
	Movies     *MoviesRepository
	Ratings    *RatingsRepository
	Comments   *CommentsRepository
	Categories *CategoriesRepository
	Users      *UsersRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	pool := st.Pool()
	return &Repository{
		store:      st,
		Movies:     &MoviesRepository{db: pool},
		Ratings:    &RatingsRepository{db: pool},
		Comments:   &CommentsRepository{db: pool},
		Categories: &CategoriesRepository{db: pool},
		Users:      &UsersRepository{db: pool},
	}
}

// PostgreSQL error codes translated into domain errors.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeForeignKeyViolation  = "23503"
)

// translateError maps driver errors onto domain sentinels, leaving others untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected:
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
		}
	}
	return err
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
