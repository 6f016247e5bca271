package models

import "time"

// Post represents a blog post. Content holds sanitized HTML — the store
// never persists raw markup. AuthorID is nil for orphaned posts (the
// referenced author was deleted).
type Post struct {
	ID        int64
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	AuthorID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Author is the joined author row, nil when the post has none.
	Author *Author
}
