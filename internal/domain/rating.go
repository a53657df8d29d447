package domain

// Score bounds accepted for a single rating.
const (
	MinScore = 1
	MaxScore = 100
)

// Rating represents a single user's score for a movie. Ratings are immutable once stored.
type Rating struct {
	ID      int64
	MovieID int64
	UserID  int64
	Score   int
}
