// Package web provides embedded static assets (CSS) for the site.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree, served at /static/.
//
//go:embed static
var StaticFS embed.FS
