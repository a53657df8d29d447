package domain

import "time"

// Movie represents the canonical movie entity in the catalog.
type Movie struct {
	ID            int64
	Title         string
	CategoryID    int64
	ReleaseDate   time.Time
	Description   string
	AverageRating float64
	Ratings       []Rating
	Comments      []Comment
}

// MeanScore returns the unweighted arithmetic mean of the given ratings, or 0 when empty.
func MeanScore(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int64
	for _, r := range ratings {
		sum += int64(r.Score)
	}
	return float64(sum) / float64(len(ratings))
}

// MovieDetail is the read projection of a movie served to clients.
type MovieDetail struct {
	Title         string
	Category      string
	ReleaseDate   time.Time
	Description   string
	AverageRating float64
	Comments      []string
}
