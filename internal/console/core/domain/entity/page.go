package entity

// Page is one page of a backend list response. Next and Previous are opaque
// cursors supplied by the backend; empty means no page in that direction.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Items    []T    `json:"results"`
}

// ListQuery narrows a list request. Cursor, when set, takes precedence and
// is followed as returned by the backend; Search applies a partial-match
// filter on the collection's search fields.
type ListQuery struct {
	Search string
	Cursor string
}
