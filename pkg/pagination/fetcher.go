package pagination

import (
	"context"
	"encoding/json"
	"net/http"
)

// Response is the decoded result of a list request.
type Response struct {
	// Records holds the raw entries of the "data" array. It is nil when the
	// response carried no data at all.
	Records []json.RawMessage

	// Header holds the HTTP response headers.
	Header http.Header

	// Pagination is the server supplied pagination block, nil when absent.
	Pagination *PaginationInfo
}

// PaginationInfo is the "pagination" block of a list response.
type PaginationInfo struct {
	NextPage     string `json:"next_page,omitempty"`
	PreviousPage string `json:"previous_page,omitempty"`
	CurrentPage  int    `json:"current_page,omitempty"`
	PerPage      int    `json:"per_page,omitempty"`
}

// HasNext reports whether the server announced a next page.
func (p *PaginationInfo) HasNext() bool {
	return p != nil && p.NextPage != ""
}

// Fetcher performs the list request for a set of parameters.
type Fetcher interface {
	Fetch(ctx context.Context, params Params) (*Response, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, params Params) (*Response, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, params Params) (*Response, error) {
	return f(ctx, params)
}

// Factory builds an item from a raw record. The query carries the parameters of
// the request, which lets factories stamp context the API omits from records.
type Factory[T any] func(raw json.RawMessage, q Query) (T, error)

// CursorFunc returns the cursor value of an item.
type CursorFunc[T any] func(item T) string
