// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the client does not ask for one.
const DefaultLimit = 10

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// Page holds the offset-pagination window for a list request.
type Page struct {
	Number int // 1-based page number
	Limit  int // documents per page
}

// Parse extracts the "page" and "limit" query parameters.
// Out-of-range or unparsable values fall back to the defaults rather
// than failing the request: page clamps to 1, limit to [1, MaxLimit].
func Parse(r *http.Request) Page {
	p := Page{Number: 1, Limit: DefaultLimit}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Number = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			if n > MaxLimit {
				n = MaxLimit
			}
			p.Limit = n
		}
	}
	return p
}

// Skip returns the number of documents to skip for this page.
func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// TotalPages computes ceil(count/limit). A count of zero yields zero pages.
func TotalPages(count int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (count + int64(limit) - 1) / int64(limit)
}
