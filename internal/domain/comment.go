package domain

// Comment is a free-text remark left by a user on a movie.
type Comment struct {
	ID      int64
	MovieID int64
	UserID  int64
	Text    string
}
