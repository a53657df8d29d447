package repository

import (
	"context"
	"fmt"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

// CommentsRepository persists movie comments.
type CommentsRepository struct {
	db querier
}

// Create stores a comment.
func (r *CommentsRepository) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	const query = `
        INSERT INTO comments (movie_id, user_id, text)
        VALUES ($1,$2,$3)
        RETURNING id
    `
	if err := r.db.QueryRow(ctx, query, comment.MovieID, nullableID(comment.UserID), comment.Text).Scan(&comment.ID); err != nil {
		return domain.Comment{}, translateError(err)
	}
	return comment, nil
}

// ListByMovie returns a movie's comments in insertion order.
func (r *CommentsRepository) ListByMovie(ctx context.Context, movieID int64) ([]domain.Comment, error) {
	const query = `
        SELECT id, movie_id, user_id, text
        FROM comments
        WHERE movie_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var (
			comment domain.Comment
			userID  *int64
		)
		if err := rows.Scan(&comment.ID, &comment.MovieID, &userID, &comment.Text); err != nil {
			return nil, err
		}
		comment.UserID = derefID(userID)
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}
