package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Seed populates the database with initial development data.
// It creates a default author and a welcome post if the store is empty.
func Seed(db *sql.DB) error {
	// Check if any authors exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM authors").Scan(&count); err != nil {
		return fmt.Errorf("seed check authors: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)

	res, err := db.Exec(`
		INSERT INTO authors (name, email, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, "Admin", "admin@inkpress.local", "Default author created by the development seed.", now, now)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	authorID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("seed author id: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO posts (title, slug, excerpt, content, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, "Welcome to Inkpress", "welcome-to-inkpress",
		"Your blog is up and running.",
		"<h1>Welcome</h1><p>This post was created by the development seed. Log in at <a href=\"/login\">/login</a> to manage posts and authors.</p>",
		authorID, now, now)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	slog.Info("database seeded with default author and welcome post",
		"author", "admin@inkpress.local",
	)

	return nil
}
