// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Inkpress blog.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/models"
	"inkpress/internal/render"
	"inkpress/internal/store"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer *render.Renderer
	posts    PostRepository
	authors  AuthorRepository
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(renderer *render.Renderer, posts PostRepository, authors AuthorRepository) *Admin {
	return &Admin{
		renderer: renderer,
		posts:    posts,
		authors:  authors,
	}
}

// parseID reads and validates the {id} route parameter. IDs are parsed
// once here, at the handler boundary — the stores only ever see an int64.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// --- Posts CRUD ---

// PostsList renders the post management page with search and pagination.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("search"))

	var posts []models.Post
	var err error
	if query != "" {
		posts, err = a.posts.Search(query)
	} else {
		posts, err = a.posts.List()
	}
	if err != nil {
		slog.Error("list posts failed", "error", err)
	}

	page := Paginate(posts, parsePage(r), AdminPageSize)

	a.renderer.Page(w, r, "admin_posts", &render.PageData{
		Title:   "Posts",
		Section: "admin-posts",
		Data: map[string]any{
			"Page":     page,
			"Query":    query,
			"PrevPage": page.Number - 1,
			"NextPage": page.Number + 1,
		},
	})
}

// PostNew renders the new post form.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.renderPostForm(w, r, http.StatusOK, postFormData{
		IsNew:  true,
		Action: "/admin/posts",
	})
}

// PostCreate handles the new post form submission.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	form := readPostForm(r)

	if errMsg := validatePost(form.Title, form.Excerpt, form.Content); errMsg != "" {
		form.IsNew = true
		form.Action = "/admin/posts"
		form.Error = errMsg
		a.renderPostForm(w, r, http.StatusBadRequest, form)
		return
	}

	if _, err := a.posts.Create(form.input()); err != nil {
		slog.Error("create post failed", "error", err)
		form.IsNew = true
		form.Action = "/admin/posts"
		form.Error = "Failed to create the post. The title may already be in use."
		a.renderPostForm(w, r, http.StatusOK, form)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostEdit renders the edit post form.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		a.NotFound(w, r)
		return
	}

	post, err := a.posts.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
	}
	if post == nil {
		a.NotFound(w, r)
		return
	}

	form := postFormData{
		Action:  "/admin/posts/" + strconv.FormatInt(id, 10),
		Title:   post.Title,
		Excerpt: post.Excerpt,
		Content: post.Content,
	}
	if post.AuthorID != nil {
		form.AuthorID = strconv.FormatInt(*post.AuthorID, 10)
	}

	a.renderPostForm(w, r, http.StatusOK, form)
}

// PostUpdate handles the edit post form submission.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		a.NotFound(w, r)
		return
	}

	form := readPostForm(r)
	form.Action = "/admin/posts/" + strconv.FormatInt(id, 10)

	if errMsg := validatePost(form.Title, form.Excerpt, form.Content); errMsg != "" {
		form.Error = errMsg
		a.renderPostForm(w, r, http.StatusBadRequest, form)
		return
	}

	updated, err := a.posts.Update(id, form.input())
	if err != nil {
		slog.Error("update post failed", "error", err, "id", id)
		form.Error = "Failed to update the post. The title may already be in use."
		a.renderPostForm(w, r, http.StatusOK, form)
		return
	}
	if updated == nil {
		a.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostDelete handles post deletion.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		a.NotFound(w, r)
		return
	}

	deleted, err := a.posts.Delete(id)
	if err != nil {
		slog.Error("delete post failed", "error", err, "id", id)
		a.renderer.PageStatus(w, r, http.StatusInternalServerError, "error", &render.PageData{
			Title: "Error",
			Data:  map[string]any{},
		})
		return
	}
	if !deleted {
		a.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// NotFound renders the generic 404 page.
func (a *Admin) NotFound(w http.ResponseWriter, r *http.Request) {
	a.renderer.PageStatus(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Title: "Not Found",
		Data:  map[string]any{},
	})
}

// --- Post form plumbing ---

// postFormData carries the post form state through validation failures so
// the form is redisplayed with the submitted values.
type postFormData struct {
	IsNew    bool
	Action   string
	Title    string
	Excerpt  string
	Content  string
	AuthorID string
	Error    string
}

// readPostForm extracts the post fields from the submitted form.
func readPostForm(r *http.Request) postFormData {
	return postFormData{
		Title:    r.FormValue("title"),
		Excerpt:  r.FormValue("excerpt"),
		Content:  r.FormValue("content"),
		AuthorID: r.FormValue("author_id"),
	}
}

// input converts the form state into a store input, parsing the optional
// author reference.
func (f postFormData) input() store.PostInput {
	in := store.PostInput{
		Title:   strings.TrimSpace(f.Title),
		Excerpt: strings.TrimSpace(f.Excerpt),
		Content: f.Content,
	}
	if id, err := strconv.ParseInt(f.AuthorID, 10, 64); err == nil && id > 0 {
		in.AuthorID = &id
	}
	return in
}

// renderPostForm renders the post form with the author dropdown populated.
func (a *Admin) renderPostForm(w http.ResponseWriter, r *http.Request, status int, form postFormData) {
	authors, err := a.authors.List()
	if err != nil {
		slog.Error("list authors for form failed", "error", err)
	}

	title := "Edit Post"
	if form.IsNew {
		title = "New Post"
	}

	a.renderer.PageStatus(w, r, status, "post_form", &render.PageData{
		Title:   title,
		Section: "admin-posts",
		Data: map[string]any{
			"IsNew":    form.IsNew,
			"Action":   form.Action,
			"Title":    form.Title,
			"Excerpt":  form.Excerpt,
			"Content":  form.Content,
			"AuthorID": form.AuthorID,
			"Authors":  authors,
			"Error":    form.Error,
		},
	})
}
