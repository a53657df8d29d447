package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

// UsersRepository persists users and their interested categories.
type UsersRepository struct {
	db querier
}

const userSelect = `
    SELECT u.id,
           u.name,
           COALESCE((SELECT array_agg(uc.category_id ORDER BY uc.category_id)
                     FROM user_categories uc WHERE uc.user_id = u.id), '{}'::bigint[]) AS categories,
           COALESCE((SELECT array_agg(c.id ORDER BY c.id)
                     FROM comments c WHERE c.user_id = u.id), '{}'::bigint[]) AS comments
    FROM users u
`

// Create stores a user row and its interests. Call inside a transaction.
func (r *UsersRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if err := r.db.QueryRow(ctx, `INSERT INTO users (name) VALUES ($1) RETURNING id`, user.Name).Scan(&user.ID); err != nil {
		return domain.User{}, translateError(err)
	}
	for _, categoryID := range user.InterestedCategoryIDs {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO user_categories (user_id, category_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			user.ID, categoryID,
		); err != nil {
			return domain.User{}, fmt.Errorf("insert interest %d: %w", categoryID, translateError(err))
		}
	}
	user.CommentIDs = []int64{}
	if user.InterestedCategoryIDs == nil {
		user.InterestedCategoryIDs = []int64{}
	}
	return user, nil
}

// GetByID fetches a user with interests and comment ids.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
	if err != nil {
		return domain.User{}, translateError(err)
	}
	return user, nil
}

// List returns every user ordered by id.
func (r *UsersRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, userSelect+` ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

// Delete removes a user. Ratings and comments keep a NULL author.
func (r *UsersRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.Name, &user.InterestedCategoryIDs, &user.CommentIDs); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
