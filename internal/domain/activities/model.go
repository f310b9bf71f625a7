package activities

import "time"

// Activity es una entrada del diario del perro.
type Activity struct {
	ID string

	DogID   string
	DogName string

	AuthorID   string
	AuthorName string

	Date    string // YYYY-MM-DD
	Title   string
	Content string

	CreatedAt time.Time
	UpdatedAt time.Time
}
