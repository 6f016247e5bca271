// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// The database is in-memory SQLite so these tests need no services; the
// auth flow tests additionally use Redis and skip when it is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"inkpress/internal/database"
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

// testDB opens a fresh in-memory database and runs all migrations.
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

// testRedisClient returns a Redis client on DB 15 for auth flow tests,
// skipping when Redis is not reachable.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

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

	return client
}

// testEnv holds the dependencies for handler tests.
type testEnv struct {
	DB       *sql.DB
	Renderer *render.Renderer
	Posts    *store.PostStore
	Authors  *store.AuthorStore
	Admin    *Admin
	Public   *Public
}

// newTestEnv creates a test environment backed by a fresh in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	posts := store.NewPostStore(db)
	authors := store.NewAuthorStore(db)

	return &testEnv{
		DB:       db,
		Renderer: renderer,
		Posts:    posts,
		Authors:  authors,
		Admin:    NewAdmin(renderer, posts, authors),
		Public:   NewPublic(renderer, posts),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// seedAuthor inserts an author fixture and returns its id.
func seedAuthor(t *testing.T, env *testEnv, name string) int64 {
	t.Helper()
	author, err := env.Authors.Create(store.AuthorInput{Name: name})
	if err != nil {
		t.Fatalf("seed author: %v", err)
	}
	return author.ID
}

// seedPost inserts a post fixture and returns its id.
func seedPost(t *testing.T, env *testEnv, title string) int64 {
	t.Helper()
	post, err := env.Posts.Create(store.PostInput{
		Title:   title,
		Excerpt: "test excerpt",
		Content: "<p>test content</p>",
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post.ID
}
