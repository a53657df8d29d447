package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

// CreateUser registers a user with their interested categories.
func (s *Service) CreateUser(ctx context.Context, name string, interests []int64) (domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	seen := make(map[int64]struct{}, len(interests))
	unique := make([]int64, 0, len(interests))
	for _, id := range interests {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if err := s.requireCategory(ctx, id); err != nil {
			return domain.User{}, err
		}
		unique = append(unique, id)
	}

	user, err := s.store.CreateUser(ctx, domain.User{Name: name, InterestedCategoryIDs: unique})
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info().Int64("user_id", user.ID).Int("interests", len(unique)).Msg("user created")
	return user, nil
}

// GetUser returns a user with interests and comment ids.
func (s *Service) GetUser(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.store.FindUser(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, nil
}

// ListUsers returns every user ordered by id.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user. Their ratings and comments stay on the movies
// without an author so cached averages remain valid.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// CreateCategory adds a category.
func (s *Service) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Category{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	category, err := s.store.CreateCategory(ctx, name)
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// ListCategories returns every category ordered by id.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
