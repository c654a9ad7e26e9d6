package models

// Pagination describes the last fetched page only.
type Pagination struct {
	CurrentPage int
	LastPage    int
	Total       int
	PerPage     int
}

// DefaultPagination is used before the first fetch and for missing fields.
func DefaultPagination() Pagination {
	return Pagination{CurrentPage: 1, LastPage: 1, Total: 0, PerPage: 20}
}

// ListQuery parameterises a list fetch. Zero values are omitted from the
// request.
type ListQuery struct {
	Page    int
	PerPage int
	SortBy  string
	Search  string
	Name    string
	Email   string

	// Force bypasses "already loaded" short-circuits.
	Force bool
}

// HasFilters reports whether any search filter is set.
func (q ListQuery) HasFilters() bool {
	return q.Search != "" || q.Name != "" || q.Email != ""
}
