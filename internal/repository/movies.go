package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	db querier
}

const movieColumns = `
    id,
    title,
    category_id,
    release_date,
    description,
    average_rating
`

// Create inserts a new movie row and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movies (title, category_id, release_date, description)
        VALUES ($1,$2,$3,$4)
        RETURNING %s
    `, movieColumns)

	row := r.db.QueryRow(ctx, query, movie.Title, movie.CategoryID, movie.ReleaseDate, movie.Description)
	created, err := scanMovie(row)
	if err != nil {
		return domain.Movie{}, translateError(err)
	}
	return created, nil
}

// GetByID fetches a movie row without its collections.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Movie{}, translateError(err)
	}
	return movie, nil
}

// GetForUpdate fetches a movie row and locks it until the enclosing transaction ends.
func (r *MoviesRepository) GetForUpdate(ctx context.Context, id int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1 FOR UPDATE`, movieColumns)
	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Movie{}, translateError(err)
	}
	return movie, nil
}

// SetAverage stores the cached aggregate rating of a movie.
func (r *MoviesRepository) SetAverage(ctx context.Context, id int64, average float64) error {
	tag, err := r.db.Exec(ctx, `UPDATE movies SET average_rating = $2, updated_at = now() WHERE id = $1`, id, average)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchByTitle returns movies whose title contains text (case-sensitive), ordered by id.
func (r *MoviesRepository) SearchByTitle(ctx context.Context, text string, limit, offset int) ([]domain.Movie, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM movies
        WHERE strpos(title, $1) > 0
        ORDER BY id
        LIMIT $2 OFFSET $3
    `, movieColumns)
	return r.list(ctx, query, text, limit, offset)
}

// List returns every movie ordered by id.
func (r *MoviesRepository) List(ctx context.Context) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies ORDER BY id`, movieColumns)
	return r.list(ctx, query)
}

func (r *MoviesRepository) list(ctx context.Context, query string, args ...any) ([]domain.Movie, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var (
		movie       domain.Movie
		releaseDate time.Time
	)

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.CategoryID,
		&releaseDate,
		&movie.Description,
		&movie.AverageRating,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	movie.ReleaseDate = releaseDate.UTC()
	return movie, nil
}
