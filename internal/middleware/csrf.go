package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	// csrfTokenLength is the byte length of CSRF tokens (32 bytes = 64 hex chars).
	csrfTokenLength = 32

	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "ink_csrf"

	// CSRFFormField is the hidden form field name carrying the token.
	CSRFFormField = "csrf_token"

	// csrfTokenKey is the context key for the effective CSRF token.
	csrfTokenKey contextKey = "csrf_token"
)

// CSRF provides double-submit cookie CSRF protection. It generates a
// token stored in a cookie and validates that subsequent state-changing
// requests (POST, PUT, PATCH, DELETE) include the same token as a form
// field. The effective token is also placed in the request context so
// templates rendered by this very request can embed it even before the
// cookie has made it back to the browser.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(CSRFCookieName); err == nil {
			token = cookie.Value
		}

		// No cookie yet: mint a token and set it on the response.
		if token == "" {
			generated, err := generateCSRFToken()
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CSRFCookieName,
				Value:    generated,
				Path:     "/",
				HttpOnly: false,
				Secure:   false, // Set to true behind TLS
				SameSite: http.SameSiteStrictMode,
			})
			token = generated
		}

		r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey, token))

		// Safe methods don't need CSRF validation.
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		// For state-changing methods, validate the form token.
		submitted := r.FormValue(CSRFFormField)

		if subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
			http.Error(w, "CSRF token mismatch", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CSRFTokenFromCtx returns the CSRF token the middleware attached to the
// request. Used in templates to populate hidden form fields.
func CSRFTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey).(string)
	return token
}

// generateCSRFToken creates a cryptographically random token.
func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
