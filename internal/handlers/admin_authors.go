// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"inkpress/internal/models"
	"inkpress/internal/render"
	"inkpress/internal/store"
)

// authorRow is the admin listing view of an author. The unsearched listing
// carries post counts; search results do not, so HasCount tells the
// template which variant it is rendering.
type authorRow struct {
	models.Author
	PostCount int
	HasCount  bool
}

// AuthorsList renders the author management page with optional search.
// Without a search query the listing includes per-author post counts.
func (a *Admin) AuthorsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("search"))

	var rows []authorRow
	if query != "" {
		authors, err := a.authors.Search(query)
		if err != nil {
			slog.Error("search authors failed", "error", err)
		}
		for _, author := range authors {
			rows = append(rows, authorRow{Author: author})
		}
	} else {
		counted, err := a.authors.ListWithPostCount()
		if err != nil {
			slog.Error("list authors failed", "error", err)
		}
		for _, item := range counted {
			rows = append(rows, authorRow{Author: item.Author, PostCount: item.PostCount, HasCount: true})
		}
	}

	a.renderer.Page(w, r, "admin_authors", &render.PageData{
		Title:   "Authors",
		Section: "admin-authors",
		Data: map[string]any{
			"Authors": rows,
			"Query":   query,
		},
	})
}

// AuthorNew renders the new author form.
func (a *Admin) AuthorNew(w http.ResponseWriter, r *http.Request) {
	a.renderAuthorForm(w, r, http.StatusOK, authorFormData{
		IsNew:  true,
		Action: "/admin/authors",
	})
}

// AuthorCreate handles the new author form submission.
func (a *Admin) AuthorCreate(w http.ResponseWriter, r *http.Request) {
	form := readAuthorForm(r)

	if errMsg := validateAuthor(form.Name); errMsg != "" {
		form.IsNew = true
		form.Action = "/admin/authors"
		form.Error = errMsg
		a.renderAuthorForm(w, r, http.StatusBadRequest, form)
		return
	}

	if _, err := a.authors.Create(form.input()); err != nil {
		slog.Error("create author failed", "error", err)
		form.IsNew = true
		form.Action = "/admin/authors"
		form.Error = "Failed to create the author. The email may already be in use."
		a.renderAuthorForm(w, r, http.StatusOK, form)
		return
	}

	http.Redirect(w, r, "/admin/authors", http.StatusSeeOther)
}

// AuthorEdit renders the edit author form.
func (a *Admin) AuthorEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		a.NotFound(w, r)
		return
	}

	author, err := a.authors.FindByID(id)
	if err != nil {
		slog.Error("find author failed", "error", err, "id", id)
	}
	if author == nil {
		a.NotFound(w, r)
		return
	}

	form := authorFormData{
		Action: "/admin/authors/" + strconv.FormatInt(id, 10),
		Name:   author.Name,
	}
	if author.Email != nil {
		form.Email = *author.Email
	}
	if author.Bio != nil {
		form.Bio = *author.Bio
	}

	a.renderAuthorForm(w, r, http.StatusOK, form)
}

// AuthorUpdate handles the edit author form submission.
func (a *Admin) AuthorUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		a.NotFound(w, r)
		return
	}

	form := readAuthorForm(r)
	form.Action = "/admin/authors/" + strconv.FormatInt(id, 10)

	if errMsg := validateAuthor(form.Name); errMsg != "" {
		form.Error = errMsg
		a.renderAuthorForm(w, r, http.StatusBadRequest, form)
		return
	}

	updated, err := a.authors.Update(id, form.input())
	if err != nil {
		slog.Error("update author failed", "error", err, "id", id)
		form.Error = "Failed to update the author. The email may already be in use."
		a.renderAuthorForm(w, r, http.StatusOK, form)
		return
	}
	if updated == nil {
		a.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/admin/authors", http.StatusSeeOther)
}

// AuthorDelete handles author deletion. Posts referencing the author stay
// behind as orphans — the store clears their author reference.
func (a *Admin) AuthorDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		a.NotFound(w, r)
		return
	}

	deleted, err := a.authors.Delete(id)
	if err != nil {
		slog.Error("delete author failed", "error", err, "id", id)
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

	http.Redirect(w, r, "/admin/authors", http.StatusSeeOther)
}

// --- Author form plumbing ---

// authorFormData carries the author form state through validation failures.
type authorFormData struct {
	IsNew  bool
	Action string
	Name   string
	Email  string
	Bio    string
	Error  string
}

// readAuthorForm extracts the author fields from the submitted form.
func readAuthorForm(r *http.Request) authorFormData {
	return authorFormData{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
		Bio:   r.FormValue("bio"),
	}
}

// input converts the form state into a store input. Empty optional fields
// become nil so the unique email constraint only sees present values.
func (f authorFormData) input() store.AuthorInput {
	in := store.AuthorInput{Name: strings.TrimSpace(f.Name)}
	if email := strings.TrimSpace(f.Email); email != "" {
		in.Email = &email
	}
	if bio := strings.TrimSpace(f.Bio); bio != "" {
		in.Bio = &bio
	}
	return in
}

// renderAuthorForm renders the author form.
func (a *Admin) renderAuthorForm(w http.ResponseWriter, r *http.Request, status int, form authorFormData) {
	title := "Edit Author"
	if form.IsNew {
		title = "New Author"
	}

	a.renderer.PageStatus(w, r, status, "author_form", &render.PageData{
		Title:   title,
		Section: "admin-authors",
		Data: map[string]any{
			"IsNew":  form.IsNew,
			"Action": form.Action,
			"Name":   form.Name,
			"Email":  form.Email,
			"Bio":    form.Bio,
			"Error":  form.Error,
		},
	})
}
