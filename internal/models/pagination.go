package models

// Pagination is the server-side paging metadata attached to paginated
// responses. It reflects the backend's totals for the active server-side
// filters, not any client-side filtering applied on top.
type Pagination struct {
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}
