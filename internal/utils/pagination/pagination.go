// Package pagination provides offset-based pagination helpers shared by the
// lifecycle and query repositories.
package pagination

// DefaultPageSize is applied when a caller supplies no page size.
const DefaultPageSize = 20

// MaxPageSize bounds a single page; pageSize is the only guard against
// unbounded work in the query engine.
const MaxPageSize = 1000

// Params holds normalized offset pagination inputs.
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps page and pageSize into valid ranges.
func Normalize(page, pageSize int) Params {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Params{Page: page, PageSize: pageSize}
}

// Offset returns the number of rows to skip: (page-1) * pageSize.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages computes the page count for a total row count.
func (p Params) TotalPages(totalItems int64) int {
	if totalItems <= 0 {
		return 0
	}
	pages := totalItems / int64(p.PageSize)
	if totalItems%int64(p.PageSize) != 0 {
		pages++
	}
	return int(pages)
}
