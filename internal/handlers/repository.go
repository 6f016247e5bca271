// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"inkpress/internal/models"
	"inkpress/internal/store"
)

// PostRepository is the post storage surface the handlers depend on.
// *store.PostStore is the SQLite implementation; tests may substitute
// another.
type PostRepository interface {
	List() ([]models.Post, error)
	FindByID(id int64) (*models.Post, error)
	FindBySlug(slug string) (*models.Post, error)
	Create(in store.PostInput) (*models.Post, error)
	Update(id int64, in store.PostInput) (*models.Post, error)
	Delete(id int64) (bool, error)
	Search(query string) ([]models.Post, error)
}

// AuthorRepository is the author storage surface the handlers depend on.
type AuthorRepository interface {
	List() ([]models.Author, error)
	FindByID(id int64) (*models.Author, error)
	Create(in store.AuthorInput) (*models.Author, error)
	Update(id int64, in store.AuthorInput) (*models.Author, error)
	Delete(id int64) (bool, error)
	Search(query string) ([]models.Author, error)
	ListWithPostCount() ([]models.AuthorWithCount, error)
}
