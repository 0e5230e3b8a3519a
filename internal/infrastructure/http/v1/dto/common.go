// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// ListResponse wraps list results with the paging that produced them.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Count  int `json:"count"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewListResponse creates a list response. A nil slice renders as [].
func NewListResponse[T any](items []T, limit, offset int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items:  items,
		Count:  len(items),
		Limit:  limit,
		Offset: offset,
	}
}
