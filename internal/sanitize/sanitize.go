// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanitize strips disallowed markup from user-supplied HTML before
// it reaches the store. Disallowed tags and attributes are removed, not
// escaped. The allow-list covers the usual formatting tags plus headings,
// images (src/alt/title) and links (href/target/rel).
package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "div", "span",
		"b", "i", "strong", "em", "u", "s", "del",
		"blockquote", "pre", "code",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
	)

	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowAttrs("href", "target", "rel").OnElements("a")

	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)

	// Drop the text inside removed script/style elements too.
	p.SkipElementsContent("script", "style")

	return p
}

// HTML returns the sanitized form of the given HTML fragment.
func HTML(input string) string {
	return policy.Sanitize(input)
}
