package handlers

import "strings"

// validatePost checks the required post form fields and returns the first
// error found. Only presence is validated — no length or format rules.
func validatePost(title, excerpt, content string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if strings.TrimSpace(excerpt) == "" {
		return "Excerpt is required."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	return ""
}

// validateAuthor checks the required author form fields.
func validateAuthor(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	return ""
}
