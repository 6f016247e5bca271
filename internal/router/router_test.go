// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Router tests exercise the full middleware chain over an in-memory
// database. Requests carry no session cookie, so Redis is only needed for
// the admin gate test, which skips when it is unavailable.
package router

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"inkpress/internal/database"
	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
	"inkpress/internal/render"
	"inkpress/internal/session"
	"inkpress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testRouter builds the full router. sessions may be backed by a nil Redis
// client for tests that never send a session cookie.
func testRouter(t *testing.T, sessions *session.Store) chi.Router {
	t.Helper()

	db := testDB(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	posts := store.NewPostStore(db)
	authors := store.NewAuthorStore(db)

	if _, err := posts.Create(store.PostInput{
		Title:   "Routed Post",
		Excerpt: "an excerpt",
		Content: "<p>routed content</p>",
	}); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	admin := handlers.NewAdmin(renderer, posts, authors)
	auth := handlers.NewAuth(renderer, sessions, "test-password")
	public := handlers.NewPublic(renderer, posts)

	return New(sessions, admin, auth, public)
}

func nilSessions() *session.Store {
	return session.NewStore(nil, "test-secret", false)
}

func get(t *testing.T, r chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	r := testRouter(t, nilSessions())

	rec := get(t, r, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHomeRedirect(t *testing.T) {
	r := testRouter(t, nilSessions())

	rec := get(t, r, "/")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/posts" {
		t.Errorf("redirect to %q, want /posts", loc)
	}
}

func TestPublicPostRoutes(t *testing.T) {
	r := testRouter(t, nilSessions())

	rec := get(t, r, "/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("/posts: got status %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Routed Post") {
		t.Error("/posts should list the seeded post")
	}

	rec = get(t, r, "/posts/routed-post")
	if rec.Code != http.StatusOK {
		t.Fatalf("/posts/routed-post: got status %d, want %d", rec.Code, http.StatusOK)
	}

	rec = get(t, r, "/posts/no-such-slug")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown slug: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestStaticAssets(t *testing.T) {
	r := testRouter(t, nilSessions())

	rec := get(t, r, "/static/style.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/css") {
		t.Errorf("Content-Type = %q, want text/css", ct)
	}
}

func TestUnknownRoute_Returns404(t *testing.T) {
	r := testRouter(t, nilSessions())

	rec := get(t, r, "/definitely/not/a/route")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	r := testRouter(t, nilSessions())

	rec := get(t, r, "/posts")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

func TestLoginRoute(t *testing.T) {
	r := testRouter(t, nilSessions())

	rec := get(t, r, "/login")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "password") {
		t.Error("login page should contain the password field")
	}
}

var csrfFieldRE = regexp.MustCompile(`name="csrf_token" value="([^"]*)"`)

// fetchLoginForm does a cookie-less GET /login, as a browser on its very
// first visit would, and returns the token embedded in the form plus the
// cookies that came back on the response.
func fetchLoginForm(t *testing.T, r chi.Router) (string, []*http.Cookie) {
	t.Helper()

	rec := get(t, r, "/login")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /login: got status %d, want %d", rec.Code, http.StatusOK)
	}

	m := csrfFieldRE.FindStringSubmatch(rec.Body.String())
	if m == nil {
		t.Fatal("login page has no csrf_token field")
	}
	if m[1] == "" {
		t.Fatal("login form rendered an empty csrf_token on a first visit")
	}
	return m[1], rec.Result().Cookies()
}

func postLogin(t *testing.T, r chi.Router, password, token string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("password", password)
	form.Set(middleware.CSRFFormField, token)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// A first-time visitor must be able to submit the login form straight away:
// the token the form carries has to match the cookie that was set on the
// same response.
func TestLoginForm_FirstVisitTokenUsable(t *testing.T) {
	r := testRouter(t, nilSessions())

	token, cookies := fetchLoginForm(t, r)

	// Wrong password on purpose: it exercises the whole chain without a
	// session store while proving the token cleared CSRF validation.
	rec := postLogin(t, r, "wrong-password", token, cookies)
	if rec.Code == http.StatusForbidden {
		t.Fatalf("first-visit login rejected as a CSRF mismatch: %s", rec.Body.String())
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials.") {
		t.Errorf("body = %q, want the invalid-credentials message", rec.Body.String())
	}
}

func TestLoginFlow_FreshBrowser(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_HOST", "localhost") + ":" + envOr("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       15,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Redis not reachable: %v", err)
	}
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	r := testRouter(t, session.NewStore(client, "test-secret", false))

	token, cookies := fetchLoginForm(t, r)

	rec := postLogin(t, r, "test-password", token, cookies)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want %d (body %q)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/posts" {
		t.Errorf("redirect to %q, want /admin/posts", loc)
	}

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("successful login should set the session cookie")
	}
}

func TestAdminGate_RedirectsToLogin(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_HOST", "localhost") + ":" + envOr("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       15,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Redis not reachable: %v", err)
	}
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	r := testRouter(t, session.NewStore(client, "test-secret", false))

	for _, path := range []string{"/admin", "/admin/posts", "/admin/authors", "/admin/posts/new"} {
		rec := get(t, r, path)
		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s: got status %d, want %d", path, rec.Code, http.StatusSeeOther)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: redirect to %q, want /login", path, loc)
		}
	}
}
