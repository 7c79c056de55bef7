package pagination

const DefaultPerPage = 10

// Page is one window of a list. Number is 1-based.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

// Paginate slices items into the requested page. Out of range page numbers
// are moved to the nearest valid page; a non-positive perPage uses the default.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(items)
	pages := (total + perPage - 1) / perPage
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: pages,
	}
}
