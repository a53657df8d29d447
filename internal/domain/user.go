package domain

// User is a catalog member with a set of interested categories.
type User struct {
	ID                    int64
	Name                  string
	InterestedCategoryIDs []int64
	CommentIDs            []int64
}

// InterestSet returns the user's interested categories as a lookup set.
func (u User) InterestSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(u.InterestedCategoryIDs))
	for _, id := range u.InterestedCategoryIDs {
		set[id] = struct{}{}
	}
	return set
}
