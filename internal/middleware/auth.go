// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"inkpress/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"
)

// LoadSession retrieves the session from Redis and stores it in the
// request context. Downstream handlers can access it via SessionFromCtx().
// This middleware does NOT enforce authentication — it just loads the
// session if one exists.
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				// Log but don't block — treat as unauthenticated.
				slog.Error("session load failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if data != nil {
				ctx := context.WithValue(r.Context(), SessionKey, data)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth is the gate in front of the admin routes. Authenticated
// requests pass through unchanged. Anything else has its requested path
// recorded on the session (creating an anonymous session if none exists)
// and is redirected to the login page without further processing.
// Must be applied after LoadSession in the middleware chain.
func RequireAuth(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromCtx(r.Context())
			if sess != nil && sess.Authenticated {
				next.ServeHTTP(w, r)
				return
			}

			// Remember where the visitor was heading so login can send
			// them back there.
			if sess != nil {
				sess.ReturnTo = r.URL.Path
				if err := store.Update(r.Context(), r, sess); err != nil {
					slog.Error("record return path failed", "error", err)
				}
			} else {
				_, err := store.Create(r.Context(), w, &session.Data{ReturnTo: r.URL.Path})
				if err != nil {
					slog.Error("create anonymous session failed", "error", err)
				}
			}

			http.Redirect(w, r, "/login", http.StatusSeeOther)
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}
