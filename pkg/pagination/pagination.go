package pagination

// Pagination is the page block returned alongside list payloads.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasMore     bool `json:"hasMore"`
	TotalItems  int  `json:"totalItems"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalize clamps page and limit to sane values.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Paginate slices items for the requested page and returns the page block.
// Pages past the end yield an empty slice, never an error.
func Paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	page, limit = Normalize(page, limit)

	total := len(items)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return items[start:end], Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		HasMore:     page < totalPages,
		TotalItems:  total,
	}
}
