// Package models defines the data structures persisted by the store layer.
package models

import "time"

// Author represents a blog author. Email and Bio are optional; a nil Email
// keeps the row out of the unique-email constraint.
type Author struct {
	ID        int64
	Name      string
	Email     *string
	Bio       *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthorWithCount pairs an author with the number of posts referencing it.
// Authors without posts carry a count of zero.
type AuthorWithCount struct {
	Author
	PostCount int
}
