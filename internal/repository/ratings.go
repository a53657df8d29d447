package repository

import (
	"context"
	"fmt"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

// RatingsRepository provides helpers for movie ratings.
type RatingsRepository struct {
	db querier
}

// Insert stores a new rating. Ratings are never updated.
func (r *RatingsRepository) Insert(ctx context.Context, rating domain.Rating) (domain.Rating, error) {
	const query = `
        INSERT INTO ratings (movie_id, user_id, score)
        VALUES ($1,$2,$3)
        RETURNING id
    `
	if err := r.db.QueryRow(ctx, query, rating.MovieID, nullableID(rating.UserID), rating.Score).Scan(&rating.ID); err != nil {
		return domain.Rating{}, translateError(err)
	}
	return rating, nil
}

// ListByMovie returns a movie's ratings in insertion order.
func (r *RatingsRepository) ListByMovie(ctx context.Context, movieID int64) ([]domain.Rating, error) {
	const query = `
        SELECT id, movie_id, user_id, score
        FROM ratings
        WHERE movie_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]domain.Rating, 0)
	for rows.Next() {
		var (
			rating domain.Rating
			userID *int64
		)
		if err := rows.Scan(&rating.ID, &rating.MovieID, &userID, &rating.Score); err != nil {
			return nil, err
		}
		rating.UserID = derefID(userID)
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}
