package catalog

import "github.com/Clark-Hu/movies-catalog/internal/domain"

// Recommend returns the movies whose category is one of the user's interests,
// in the order they were supplied. An empty interest set yields an empty slice.
func Recommend(user domain.User, movies []domain.Movie) []domain.Movie {
	out := make([]domain.Movie, 0)
	if len(user.InterestedCategoryIDs) == 0 {
		return out
	}
	interests := user.InterestSet()
	for _, m := range movies {
		if _, ok := interests[m.CategoryID]; ok {
			out = append(out, m)
		}
	}
	return out
}
