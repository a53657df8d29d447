// Package seed loads a JSON fixture of categories, movies, users, comments and
// ratings into an empty catalog. Entities reference each other by name.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movies-catalog/internal/catalog"
)

const dateLayout = "2006-01-02"

// Data is the seed file layout.
type Data struct {
	Categories []string  `json:"categories"`
	Movies     []Movie   `json:"movies"`
	Users      []User    `json:"users"`
	Comments   []Comment `json:"comments"`
	Ratings    []Rating  `json:"ratings"`
}

// Movie is a seeded movie; Category names an entry of Data.Categories.
type Movie struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	ReleaseDate string `json:"releaseDate"`
	Description string `json:"description"`
}

// User is a seeded user with interests given by category name.
type User struct {
	Name      string   `json:"name"`
	Interests []string `json:"interests"`
}

// Comment is a seeded comment referencing its user and movie by name and title.
type Comment struct {
	User  string `json:"user"`
	Movie string `json:"movie"`
	Text  string `json:"text"`
}

// Rating is a seeded rating referencing its user and movie by name and title.
type Rating struct {
	User  string `json:"user"`
	Movie string `json:"movie"`
	Score int    `json:"score"`
}

// Result summarises what Apply stored.
type Result struct {
	Skipped    bool
	Categories int
	Movies     int
	Users      int
	Comments   int
	Ratings    int
}

// ReadFile parses a seed file.
func ReadFile(path string) (Data, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed file: %w", err)
	}
	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return Data{}, fmt.Errorf("parse seed file: %w", err)
	}
	return data, nil
}

// Apply stores data through svc unless the catalog already holds categories or users.
func Apply(ctx context.Context, svc *catalog.Service, data Data, logger zerolog.Logger) (Result, error) {
	var res Result

	categories, err := svc.ListCategories(ctx)
	if err != nil {
		return res, err
	}
	users, err := svc.ListUsers(ctx)
	if err != nil {
		return res, err
	}
	if len(categories) > 0 || len(users) > 0 {
		logger.Info().Msg("catalog already seeded, skipping")
		res.Skipped = true
		return res, nil
	}

	categoryIDs := make(map[string]int64, len(data.Categories))
	for _, name := range data.Categories {
		c, err := svc.CreateCategory(ctx, name)
		if err != nil {
			return res, fmt.Errorf("category %q: %w", name, err)
		}
		categoryIDs[name] = c.ID
		res.Categories++
	}

	movieIDs := make(map[string]int64, len(data.Movies))
	for _, m := range data.Movies {
		categoryID, ok := categoryIDs[m.Category]
		if !ok {
			return res, fmt.Errorf("movie %q: unknown category %q", m.Title, m.Category)
		}
		released, err := time.Parse(dateLayout, m.ReleaseDate)
		if err != nil {
			return res, fmt.Errorf("movie %q: release date: %w", m.Title, err)
		}
		created, err := svc.AddMovie(ctx, catalog.NewMovie{
			Title:       m.Title,
			CategoryID:  categoryID,
			ReleaseDate: released,
			Description: m.Description,
		})
		if err != nil {
			return res, fmt.Errorf("movie %q: %w", m.Title, err)
		}
		movieIDs[m.Title] = created.ID
		res.Movies++
	}

	userIDs := make(map[string]int64, len(data.Users))
	for _, u := range data.Users {
		interests := make([]int64, 0, len(u.Interests))
		for _, name := range u.Interests {
			id, ok := categoryIDs[name]
			if !ok {
				return res, fmt.Errorf("user %q: unknown category %q", u.Name, name)
			}
			interests = append(interests, id)
		}
		created, err := svc.CreateUser(ctx, u.Name, interests)
		if err != nil {
			return res, fmt.Errorf("user %q: %w", u.Name, err)
		}
		userIDs[u.Name] = created.ID
		res.Users++
	}

	for _, c := range data.Comments {
		movieID, userID, err := resolve(movieIDs, userIDs, c.Movie, c.User)
		if err != nil {
			return res, fmt.Errorf("comment: %w", err)
		}
		if _, err := svc.AddComment(ctx, movieID, userID, c.Text); err != nil {
			return res, fmt.Errorf("comment on %q: %w", c.Movie, err)
		}
		res.Comments++
	}

	for _, r := range data.Ratings {
		movieID, userID, err := resolve(movieIDs, userIDs, r.Movie, r.User)
		if err != nil {
			return res, fmt.Errorf("rating: %w", err)
		}
		if _, err := svc.RecordRating(ctx, movieID, userID, r.Score); err != nil {
			return res, fmt.Errorf("rating on %q: %w", r.Movie, err)
		}
		res.Ratings++
	}

	logger.Info().
		Int("categories", res.Categories).
		Int("movies", res.Movies).
		Int("users", res.Users).
		Int("comments", res.Comments).
		Int("ratings", res.Ratings).
		Msg("catalog seeded")
	return res, nil
}

func resolve(movies, users map[string]int64, movie, user string) (int64, int64, error) {
	movieID, ok := movies[movie]
	if !ok {
		return 0, 0, fmt.Errorf("unknown movie %q", movie)
	}
	userID, ok := users[user]
	if !ok {
		return 0, 0, fmt.Errorf("unknown user %q", user)
	}
	return movieID, userID, nil
}
