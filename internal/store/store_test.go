// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides shared test infrastructure for the store tests.
// Each test gets its own migrated in-memory SQLite database.
package store

import (
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"

	"inkpress/internal/database"
)

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

func strPtr(s string) *string { return &s }

// backdate rewrites a post's creation timestamp so ordering tests don't
// depend on sub-second insert timing.
func backdate(t *testing.T, db *sql.DB, postID int64, ts string) {
	t.Helper()
	if _, err := db.Exec(`UPDATE posts SET created_at = ? WHERE id = ?`, ts, postID); err != nil {
		t.Fatalf("backdate post %d: %v", postID, err)
	}
}
