package domain

// Category partitions movies into genres and doubles as a user interest.
type Category struct {
	ID   int64
	Name string
}
