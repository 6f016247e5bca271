// Package router sets up all HTTP routes and middleware chains for the
// Inkpress blog. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
	"inkpress/internal/session"
	"inkpress/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))
	r.Use(middleware.CSRF)

	// Health check.
	r.Get("/health", healthHandler)

	// Static assets.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public routes.
	r.Get("/", public.Home)
	r.Get("/posts", public.PostsIndex)
	r.Get("/posts/{slug}", public.PostShow)

	// Auth.
	r.Get("/login", auth.LoginPage)
	r.Post("/login", auth.LoginSubmit)
	r.Get("/logout", auth.Logout)

	// Admin routes — everything behind the session gate.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessionStore))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", admin.PostsList)
			r.Get("/new", admin.PostNew)
			r.Post("/", admin.PostCreate)
			r.Get("/{id}/edit", admin.PostEdit)
			r.Post("/{id}", admin.PostUpdate)
			r.Post("/{id}/delete", admin.PostDelete)
		})

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", admin.AuthorsList)
			r.Get("/new", admin.AuthorNew)
			r.Post("/", admin.AuthorCreate)
			r.Get("/{id}/edit", admin.AuthorEdit)
			r.Post("/{id}", admin.AuthorUpdate)
			r.Post("/{id}/delete", admin.AuthorDelete)
		})
	})

	// 404 fallback — registered after all real routes so unmatched paths
	// land here and not on a handler.
	r.NotFound(public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
