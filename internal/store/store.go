// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the repositories over the SQLite content store.
// Repositories never cache rows: every read goes back to the database.
// Single-entity lookups return (nil, nil) when nothing matched.
package store

import "time"

// timeFormat is how timestamps are persisted: RFC 3339 UTC text.
const timeFormat = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
