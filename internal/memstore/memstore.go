// Package memstore is an in-process catalog store. Each movie has its own
// mutex that serializes rating updates; the remaining state sits behind a
// single RWMutex.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

// Store keeps catalog entities in memory.
type Store struct {
	mu         sync.RWMutex
	movies     map[int64]*domain.Movie
	movieLocks map[int64]*sync.Mutex
	users      map[int64]*domain.User
	categories map[int64]domain.Category
	comments   map[int64]domain.Comment
	nextID     map[string]int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		movies:     make(map[int64]*domain.Movie),
		movieLocks: make(map[int64]*sync.Mutex),
		users:      make(map[int64]*domain.User),
		categories: make(map[int64]domain.Category),
		comments:   make(map[int64]domain.Comment),
		nextID:     make(map[string]int64),
	}
}

// HealthCheck always succeeds.
func (s *Store) HealthCheck(context.Context) error { return nil }

func (s *Store) id(kind string) int64 {
	s.nextID[kind]++
	return s.nextID[kind]
}

// FindMovie returns a copy of the movie with ratings and comments.
func (s *Store) FindMovie(_ context.Context, id int64) (domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movies[id]
	if !ok {
		return domain.Movie{}, domain.ErrNotFound
	}
	return cloneMovie(m, true), nil
}

// FindUser returns a copy of the user.
func (s *Store) FindUser(_ context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

// FindCategory returns the category with the given id.
func (s *Store) FindCategory(_ context.Context, id int64) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	return c, nil
}

// QueryMoviesByTitle performs a case-sensitive substring match ordered by id.
func (s *Store) QueryMoviesByTitle(_ context.Context, text string, limit, offset int) ([]domain.Movie, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: negative limit or offset", domain.ErrInvalidInput)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.Movie, 0)
	for _, m := range s.sortedMovies() {
		if strings.Contains(m.Title, text) {
			matched = append(matched, cloneMovie(m, false))
		}
	}
	if offset >= len(matched) {
		return []domain.Movie{}, nil
	}
	end := len(matched)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return matched[offset:end], nil
}

// ListMovies returns every movie ordered by id.
func (s *Store) ListMovies(context.Context) ([]domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Movie, 0, len(s.movies))
	for _, m := range s.sortedMovies() {
		out = append(out, cloneMovie(m, false))
	}
	return out, nil
}

// UpdateMovieRatings applies fn while holding the movie's lock.
func (s *Store) UpdateMovieRatings(ctx context.Context, id int64, fn func(*domain.Movie) error) (domain.Movie, error) {
	s.mu.RLock()
	lock, ok := s.movieLocks[id]
	s.mu.RUnlock()
	if !ok {
		return domain.Movie{}, domain.ErrNotFound
	}

	lock.Lock()
	defer lock.Unlock()
	if err := ctx.Err(); err != nil {
		return domain.Movie{}, err
	}

	s.mu.RLock()
	working := cloneMovie(s.movies[id], true)
	s.mu.RUnlock()

	if err := fn(&working); err != nil {
		return domain.Movie{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range working.Ratings {
		if r.ID != 0 || r.UserID == 0 {
			continue
		}
		if _, ok := s.users[r.UserID]; !ok {
			return domain.Movie{}, fmt.Errorf("rating user %d: %w", r.UserID, domain.ErrNotFound)
		}
	}
	stored := s.movies[id]
	for i := range working.Ratings {
		if working.Ratings[i].ID != 0 {
			continue
		}
		working.Ratings[i].ID = s.id("rating")
		working.Ratings[i].MovieID = id
		stored.Ratings = append(stored.Ratings, working.Ratings[i])
	}
	stored.AverageRating = working.AverageRating
	return cloneMovie(stored, true), nil
}

// CreateMovie stores a new movie with empty collections.
func (s *Store) CreateMovie(_ context.Context, movie domain.Movie) (domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[movie.CategoryID]; !ok {
		return domain.Movie{}, domain.ErrNotFound
	}
	movie.ID = s.id("movie")
	movie.AverageRating = 0
	movie.Ratings = nil
	movie.Comments = nil
	stored := movie
	s.movies[movie.ID] = &stored
	s.movieLocks[movie.ID] = &sync.Mutex{}
	return cloneMovie(&stored, true), nil
}

// CreateComment appends a comment to its movie and author.
func (s *Store) CreateComment(_ context.Context, comment domain.Comment) (domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	movie, ok := s.movies[comment.MovieID]
	if !ok {
		return domain.Comment{}, domain.ErrNotFound
	}
	user, ok := s.users[comment.UserID]
	if !ok {
		return domain.Comment{}, domain.ErrNotFound
	}
	comment.ID = s.id("comment")
	s.comments[comment.ID] = comment
	movie.Comments = append(movie.Comments, comment)
	user.CommentIDs = append(user.CommentIDs, comment.ID)
	return comment, nil
}

// CreateCategory stores a new category.
func (s *Store) CreateCategory(_ context.Context, name string) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := domain.Category{ID: s.id("category"), Name: name}
	s.categories[c.ID] = c
	return c, nil
}

// ListCategories returns every category ordered by id.
func (s *Store) ListCategories(context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateUser stores a new user and their interests.
func (s *Store) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cid := range user.InterestedCategoryIDs {
		if _, ok := s.categories[cid]; !ok {
			return domain.User{}, domain.ErrNotFound
		}
	}
	user.ID = s.id("user")
	user.CommentIDs = nil
	stored := cloneUser(&user)
	s.users[user.ID] = &stored
	return cloneUser(&stored), nil
}

// ListUsers returns every user ordered by id.
func (s *Store) ListUsers(context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteUser removes the user and detaches their ratings and comments.
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	for _, m := range s.movies {
		for i := range m.Ratings {
			if m.Ratings[i].UserID == id {
				m.Ratings[i].UserID = 0
			}
		}
		for i := range m.Comments {
			if m.Comments[i].UserID == id {
				m.Comments[i].UserID = 0
			}
		}
	}
	for cid, c := range s.comments {
		if c.UserID == id {
			c.UserID = 0
			s.comments[cid] = c
		}
	}
	return nil
}

func (s *Store) sortedMovies() []*domain.Movie {
	out := make([]*domain.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneMovie(m *domain.Movie, withCollections bool) domain.Movie {
	out := *m
	out.Ratings = nil
	out.Comments = nil
	if withCollections {
		out.Ratings = append([]domain.Rating(nil), m.Ratings...)
		out.Comments = append([]domain.Comment(nil), m.Comments...)
	}
	return out
}

func cloneUser(u *domain.User) domain.User {
	out := *u
	out.InterestedCategoryIDs = append([]int64(nil), u.InterestedCategoryIDs...)
	out.CommentIDs = append([]int64(nil), u.CommentIDs...)
	return out
}
