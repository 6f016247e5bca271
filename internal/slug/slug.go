// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from post titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	// disallowed matches anything that isn't a letter, digit, underscore,
	// hyphen, or whitespace.
	disallowed = regexp.MustCompile(`[^a-z0-9_\s-]`)
	// whitespaceRun collapses consecutive whitespace into one hyphen.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// hyphenRun collapses consecutive hyphens into one.
	hyphenRun = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given title.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// Generate is deterministic: identical titles always yield identical slugs,
// so two posts with the same title collide on the unique slug constraint.
func Generate(title string) string {
	result := strings.ToLower(strings.TrimSpace(title))
	result = disallowed.ReplaceAllString(result, "")
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = hyphenRun.ReplaceAllString(result, "-")
	return result
}
