package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"inkpress/internal/middleware"
	"inkpress/internal/render"
	"inkpress/internal/session"
)

// Auth groups the login and logout HTTP handlers. Authentication is a
// single statically configured admin credential — there are no per-user
// accounts.
type Auth struct {
	renderer      *render.Renderer
	sessions      *session.Store
	adminPassword string
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, adminPassword string) *Auth {
	return &Auth{
		renderer:      renderer,
		sessions:      sessions,
		adminPassword: adminPassword,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already logged in — go straight to the admin area.
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.Authenticated {
		http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{},
	})
}

// LoginSubmit processes the login form. The submitted password is compared
// against the configured admin credential; the failure message never says
// what exactly went wrong.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")

	if subtle.ConstantTimeCompare([]byte(password), []byte(a.adminPassword)) != 1 {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign In",
			Data:  map[string]any{"Error": "Invalid credentials."},
		})
		return
	}

	// Send the visitor back to the page the gate intercepted, if any.
	// The recorded path is consumed here so a later login doesn't replay it.
	target := "/admin/posts"
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil {
		if sess.ReturnTo != "" {
			target = sess.ReturnTo
		}
		sess.Authenticated = true
		sess.ReturnTo = ""
		if err := a.sessions.Update(r.Context(), r, sess); err != nil {
			slog.Error("session update failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	} else {
		_, err := a.sessions.Create(r.Context(), w, &session.Data{Authenticated: true})
		if err != nil {
			slog.Error("session create failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout destroys the session and redirects to the public landing page.
// A destroy error is logged but the redirect happens anyway — to the end
// user a failed logout looks exactly like a successful one.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
