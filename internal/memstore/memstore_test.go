package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

func seedMovie(t *testing.T, s *Store, title string) domain.Movie {
	t.Helper()
	ctx := context.Background()
	cat, err := s.CreateCategory(ctx, "Drama")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	movie, err := s.CreateMovie(ctx, domain.Movie{
		Title:       title,
		CategoryID:  cat.ID,
		ReleaseDate: time.Date(1994, time.October, 14, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create movie: %v", err)
	}
	return movie
}

func TestFindMissing(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.FindMovie(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindMovie error = %v, want ErrNotFound", err)
	}
	if _, err := s.FindUser(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindUser error = %v, want ErrNotFound", err)
	}
	if _, err := s.FindCategory(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindCategory error = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateMovieRatings(ctx, 1, func(*domain.Movie) error { return nil }); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("UpdateMovieRatings error = %v, want ErrNotFound", err)
	}
}

func TestCreateMovieRequiresCategory(t *testing.T) {
	s := New()
	if _, err := s.CreateMovie(context.Background(), domain.Movie{Title: "x", CategoryID: 9}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("CreateMovie error = %v, want ErrNotFound", err)
	}
}

func TestUpdateMovieRatingsAbortsOnError(t *testing.T) {
	s := New()
	movie := seedMovie(t, s, "Abort")
	boom := errors.New("boom")

	_, err := s.UpdateMovieRatings(context.Background(), movie.ID, func(m *domain.Movie) error {
		m.Ratings = append(m.Ratings, domain.Rating{Score: 5})
		m.AverageRating = 5
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	got, _ := s.FindMovie(context.Background(), movie.ID)
	if len(got.Ratings) != 0 || got.AverageRating != 0 {
		t.Fatalf("movie mutated after aborted update: %+v", got)
	}
}

func TestQueryMoviesByTitlePaging(t *testing.T) {
	s := New()
	ctx := context.Background()
	cat, _ := s.CreateCategory(ctx, "Action")
	for _, title := range []string{"Alpha", "Beta", "alphabet", "Alpha II"} {
		if _, err := s.CreateMovie(ctx, domain.Movie{Title: title, CategoryID: cat.ID}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	got, _ := s.QueryMoviesByTitle(ctx, "Alpha", 1, 0)
	if len(got) != 1 || got[0].Title != "Alpha" {
		t.Fatalf("first page = %+v", got)
	}
	got, _ = s.QueryMoviesByTitle(ctx, "Alpha", 1, 1)
	if len(got) != 1 || got[0].Title != "Alpha II" {
		t.Fatalf("second page = %+v", got)
	}
	got, _ = s.QueryMoviesByTitle(ctx, "Alpha", 1, 2)
	if len(got) != 0 {
		t.Fatalf("third page = %+v, want empty", got)
	}
}

func TestQueryMoviesByTitleRejectsNegativeWindow(t *testing.T) {
	s := New()
	seedMovie(t, s, "Alpha")
	ctx := context.Background()
	if _, err := s.QueryMoviesByTitle(ctx, "Alpha", 10, -10); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative offset error = %v, want ErrInvalidInput", err)
	}
	if _, err := s.QueryMoviesByTitle(ctx, "Alpha", -1, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative limit error = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateMovieRatingsRejectsDeletedUser(t *testing.T) {
	s := New()
	ctx := context.Background()
	movie := seedMovie(t, s, "Orphan")
	user, err := s.CreateUser(ctx, domain.User{Name: "gone"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := s.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	_, err = s.UpdateMovieRatings(ctx, movie.ID, func(m *domain.Movie) error {
		m.Ratings = append(m.Ratings, domain.Rating{UserID: user.ID, Score: 50})
		m.AverageRating = domain.MeanScore(m.Ratings)
		return nil
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	got, _ := s.FindMovie(ctx, movie.ID)
	if len(got.Ratings) != 0 || got.AverageRating != 0 {
		t.Fatalf("rejected rating leaked: %+v", got)
	}
}

func TestConcurrentRatingUpdates(t *testing.T) {
	s := New()
	movie := seedMovie(t, s, "Concurrent")
	const workers = 50

	var wg sync.WaitGroup
	for i := 1; i <= workers; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := s.UpdateMovieRatings(context.Background(), movie.ID, func(m *domain.Movie) error {
				m.Ratings = append(m.Ratings, domain.Rating{Score: score})
				m.AverageRating = domain.MeanScore(m.Ratings)
				return nil
			})
			if err != nil {
				t.Errorf("update %d: %v", score, err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := s.FindMovie(context.Background(), movie.ID)
	if len(got.Ratings) != workers {
		t.Fatalf("ratings = %d, want %d", len(got.Ratings), workers)
	}
	if got.AverageRating != 25.5 {
		t.Fatalf("average = %v, want 25.5", got.AverageRating)
	}
}

func TestDeleteUserDetachesRatingsAndComments(t *testing.T) {
	s := New()
	ctx := context.Background()
	movie := seedMovie(t, s, "Detach")
	user, _ := s.CreateUser(ctx, domain.User{Name: "Ann"})

	if _, err := s.UpdateMovieRatings(ctx, movie.ID, func(m *domain.Movie) error {
		m.Ratings = append(m.Ratings, domain.Rating{UserID: user.ID, Score: 80})
		m.AverageRating = domain.MeanScore(m.Ratings)
		return nil
	}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if _, err := s.CreateComment(ctx, domain.Comment{MovieID: movie.ID, UserID: user.ID, Text: "great"}); err != nil {
		t.Fatalf("comment: %v", err)
	}

	if err := s.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteUser(ctx, user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete error = %v, want ErrNotFound", err)
	}

	got, _ := s.FindMovie(ctx, movie.ID)
	if len(got.Ratings) != 1 || got.Ratings[0].UserID != 0 {
		t.Fatalf("ratings after delete = %+v", got.Ratings)
	}
	if got.AverageRating != 80 {
		t.Fatalf("average after delete = %v, want 80", got.AverageRating)
	}
	if len(got.Comments) != 1 || got.Comments[0].UserID != 0 {
		t.Fatalf("comments after delete = %+v", got.Comments)
	}
}
