// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"inkpress/internal/models"
	"inkpress/internal/sanitize"
	"inkpress/internal/slug"
)

// PostStore handles all post-related database operations. Writes derive
// the slug from the title and sanitize the content before it is stored;
// reads join the author row so callers get the post together with its
// author (nil for orphaned posts).
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// PostInput carries the writable post fields for Create and Update.
// Slug and sanitized content are derived inside the store.
type PostInput struct {
	Title    string
	Excerpt  string
	Content  string
	AuthorID *int64
}

// postColumns is the shared select list for post reads, including the
// left-joined author columns.
const postColumns = `
	p.id, p.title, p.slug, p.excerpt, p.content, p.author_id,
	p.created_at, p.updated_at,
	a.id, a.name, a.email
`

// List returns all posts with their joined authors, ordered by creation
// timestamp descending.
func (s *PostStore) List() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT ` + postColumns + `
		FROM posts p
		LEFT JOIN authors a ON a.id = p.author_id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// FindByID retrieves a post with its joined author by id. Returns nil if
// not found.
func (s *PostStore) FindByID(id int64) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts p
		LEFT JOIN authors a ON a.id = p.author_id
		WHERE p.id = ?
	`, id)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post with its joined author by slug. Returns nil
// if not found.
func (s *PostStore) FindBySlug(postSlug string) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts p
		LEFT JOIN authors a ON a.id = p.author_id
		WHERE p.slug = ?
	`, postSlug)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Create derives the slug from the title, sanitizes the content, and
// inserts the post with generated timestamps. Returns the freshly read
// post with its joined author. A slug collision surfaces as an error from
// the unique constraint.
func (s *PostStore) Create(in PostInput) (*models.Post, error) {
	postSlug := slug.Generate(in.Title)
	content := sanitize.HTML(in.Content)
	now := formatTime(time.Now())

	res, err := s.db.Exec(`
		INSERT INTO posts (title, slug, excerpt, content, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Title, postSlug, in.Excerpt, content, in.AuthorID, now, now)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create post id: %w", err)
	}

	return s.FindByID(id)
}

// Update overwrites title, excerpt, content, and author reference. The slug
// is regenerated from the (possibly new) title on every update, so editing
// a title changes the post's public URL. The id and creation timestamp are
// untouched; the updated timestamp is refreshed. Returns nil if no row
// matched the id.
func (s *PostStore) Update(id int64, in PostInput) (*models.Post, error) {
	postSlug := slug.Generate(in.Title)
	content := sanitize.HTML(in.Content)

	res, err := s.db.Exec(`
		UPDATE posts SET title = ?, slug = ?, excerpt = ?, content = ?, author_id = ?, updated_at = ?
		WHERE id = ?
	`, in.Title, postSlug, in.Excerpt, content, in.AuthorID, formatTime(time.Now()), id)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update post rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return s.FindByID(id)
}

// Delete removes a post by id and reports whether a row was removed.
func (s *PostStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post rows: %w", err)
	}
	return affected > 0, nil
}

// Search returns posts whose title, excerpt, or content contains the query
// substring, ordered by creation timestamp descending. An empty query
// matches every post — same caveat as AuthorStore.Search.
func (s *PostStore) Search(query string) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts p
		LEFT JOIN authors a ON a.id = p.author_id
		WHERE p.title LIKE '%' || ? || '%'
		   OR p.excerpt LIKE '%' || ? || '%'
		   OR p.content LIKE '%' || ? || '%'
		ORDER BY p.created_at DESC
	`, query, query, query)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPost(row scanner) (*models.Post, error) {
	var (
		p           models.Post
		authorID    sql.NullInt64
		created     string
		updated     string
		joinedID    sql.NullInt64
		joinedName  sql.NullString
		joinedEmail sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &authorID,
		&created, &updated,
		&joinedID, &joinedName, &joinedEmail,
	); err != nil {
		return nil, err
	}

	if authorID.Valid {
		p.AuthorID = &authorID.Int64
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)

	if joinedID.Valid {
		author := &models.Author{ID: joinedID.Int64, Name: joinedName.String}
		if joinedEmail.Valid {
			author.Email = &joinedEmail.String
		}
		p.Author = author
	}

	return &p, nil
}

func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}
