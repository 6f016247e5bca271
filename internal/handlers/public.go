// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/render"
)

// Public groups handlers for the public-facing blog.
type Public struct {
	renderer *render.Renderer
	posts    PostRepository
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, posts PostRepository) *Public {
	return &Public{
		renderer: renderer,
		posts:    posts,
	}
}

// Home redirects the root path to the post listing.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
}

// PostsIndex renders the public paginated post listing.
func (p *Public) PostsIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := p.posts.List()
	if err != nil {
		slog.Error("list posts failed", "error", err)
	}

	page := Paginate(posts, parsePage(r), PublicPageSize)

	p.renderer.Page(w, r, "posts_index", &render.PageData{
		Title:   "Posts",
		Section: "posts",
		Data: map[string]any{
			"Page":     page,
			"PrevPage": page.Number - 1,
			"NextPage": page.Number + 1,
		},
	})
}

// PostShow renders a single post looked up by its slug.
func (p *Public) PostShow(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	post, err := p.posts.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find post by slug failed", "error", err, "slug", slugParam)
	}
	if post == nil {
		p.NotFound(w, r)
		return
	}

	p.renderer.Page(w, r, "post_show", &render.PageData{
		Title:   post.Title,
		Section: "posts",
		Data:    map[string]any{"Post": post},
	})
}

// NotFound renders the generic 404 page. Registered as the router's
// fallback after all real routes.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.PageStatus(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Title: "Not Found",
		Data:  map[string]any{},
	})
}
