package repository

import (
	"context"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

// CategoriesRepository persists categories.
type CategoriesRepository struct {
	db querier
}

// Create stores a category.
func (r *CategoriesRepository) Create(ctx context.Context, name string) (domain.Category, error) {
	c := domain.Category{Name: name}
	if err := r.db.QueryRow(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&c.ID); err != nil {
		return domain.Category{}, translateError(err)
	}
	return c, nil
}

// GetByID fetches a category.
func (r *CategoriesRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name); err != nil {
		return domain.Category{}, translateError(err)
	}
	return c, nil
}

// List returns every category ordered by id.
func (r *CategoriesRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
