package handlers

import (
	"net/http"
	"strconv"
)

// Page sizes differ by context: the public listing shows fewer posts per
// page than the admin tables.
const (
	PublicPageSize = 5
	AdminPageSize  = 10
)

// Page is one page sliced out of a fully loaded result set. Pagination
// happens in the handler, not in the store: listings are small enough that
// loading everything and slicing is the simpler trade.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

// HasPrev reports whether a page precedes this one.
func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

// Paginate slices items into the requested page. Page numbers below 1 are
// clamped to 1; a page past the end yields an empty item slice.
func Paginate[T any](items []T, number, size int) Page[T] {
	if number < 1 {
		number = 1
	}

	total := len(items)
	totalPages := (total + size - 1) / size

	lo := (number - 1) * size
	hi := lo + size
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}

	return Page[T]{
		Items:      items[lo:hi],
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// parsePage reads the "page" query parameter, defaulting to 1.
func parsePage(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
