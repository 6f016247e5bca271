// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"inkpress/internal/models"
)

// AuthorStore handles all author-related database operations.
type AuthorStore struct {
	db *sql.DB
}

// NewAuthorStore creates a new AuthorStore with the given database connection.
func NewAuthorStore(db *sql.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

// AuthorInput carries the writable author fields for Create and Update.
type AuthorInput struct {
	Name  string
	Email *string
	Bio   *string
}

// List returns all authors ordered by name ascending.
func (s *AuthorStore) List() ([]models.Author, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, bio, created_at, updated_at
		FROM authors
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	return scanAuthors(rows)
}

// FindByID retrieves an author by id. Returns nil if not found.
func (s *AuthorStore) FindByID(id int64) (*models.Author, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, bio, created_at, updated_at
		FROM authors WHERE id = ?
	`, id)

	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return a, nil
}

// Create inserts a new author with generated timestamps and returns the
// freshly read row. A duplicate email surfaces as an error from the
// unique constraint.
func (s *AuthorStore) Create(in AuthorInput) (*models.Author, error) {
	now := formatTime(time.Now())

	res, err := s.db.Exec(`
		INSERT INTO authors (name, email, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, in.Name, in.Email, in.Bio, now, now)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create author id: %w", err)
	}

	return s.FindByID(id)
}

// Update overwrites name, email, and bio and refreshes the updated
// timestamp. Returns nil if no row matched the id, otherwise the freshly
// read row.
func (s *AuthorStore) Update(id int64, in AuthorInput) (*models.Author, error) {
	res, err := s.db.Exec(`
		UPDATE authors SET name = ?, email = ?, bio = ?, updated_at = ?
		WHERE id = ?
	`, in.Name, in.Email, in.Bio, formatTime(time.Now()), id)
	if err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update author rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return s.FindByID(id)
}

// Delete removes an author by id and reports whether a row was removed.
// Posts referencing the author keep existing with their author reference
// cleared — the store's ON DELETE SET NULL action handles that, not
// application code.
func (s *AuthorStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete author: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete author rows: %w", err)
	}
	return affected > 0, nil
}

// Search returns authors whose name or email contains the query substring,
// ordered by name. An empty query matches every author — callers wanting
// "no query" semantics must short-circuit before calling.
func (s *AuthorStore) Search(query string) ([]models.Author, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, bio, created_at, updated_at
		FROM authors
		WHERE name LIKE '%' || ? || '%' OR email LIKE '%' || ? || '%'
		ORDER BY name ASC
	`, query, query)
	if err != nil {
		return nil, fmt.Errorf("search authors: %w", err)
	}
	defer rows.Close()

	return scanAuthors(rows)
}

// ListWithPostCount returns all authors joined with their post count,
// ordered by name. Authors with zero posts are included with a count of 0.
func (s *AuthorStore) ListWithPostCount() ([]models.AuthorWithCount, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.name, a.email, a.bio, a.created_at, a.updated_at, COUNT(p.id)
		FROM authors a
		LEFT JOIN posts p ON p.author_id = a.id
		GROUP BY a.id
		ORDER BY a.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list authors with post count: %w", err)
	}
	defer rows.Close()

	var items []models.AuthorWithCount
	for rows.Next() {
		var (
			item       models.AuthorWithCount
			email, bio sql.NullString
			created    string
			updated    string
		)
		if err := rows.Scan(&item.ID, &item.Name, &email, &bio, &created, &updated, &item.PostCount); err != nil {
			return nil, fmt.Errorf("scan author with count: %w", err)
		}
		if email.Valid {
			item.Email = &email.String
		}
		if bio.Valid {
			item.Bio = &bio.String
		}
		item.CreatedAt = parseTime(created)
		item.UpdatedAt = parseTime(updated)
		items = append(items, item)
	}
	return items, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows for the shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row scanner) (*models.Author, error) {
	var (
		a          models.Author
		email, bio sql.NullString
		created    string
		updated    string
	)
	if err := row.Scan(&a.ID, &a.Name, &email, &bio, &created, &updated); err != nil {
		return nil, err
	}
	if email.Valid {
		a.Email = &email.String
	}
	if bio.Valid {
		a.Bio = &bio.String
	}
	a.CreatedAt = parseTime(created)
	a.UpdatedAt = parseTime(updated)
	return &a, nil
}

func scanAuthors(rows *sql.Rows) ([]models.Author, error) {
	var items []models.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}
