package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Sternrassler/chute-client/pkg/pagination"
)

// Envelope is the JSON wrapper every API response uses.
type Envelope struct {
	Data       json.RawMessage            `json:"data"`
	Pagination *pagination.PaginationInfo `json:"pagination,omitempty"`

	Header     http.Header `json:"-"`
	StatusCode int         `json:"-"`
}

// HasData reports whether the envelope carried a non-null "data" member.
func (e *Envelope) HasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// Decode unmarshals "data" into v.
func (e *Envelope) Decode(v any) error {
	if !e.HasData() {
		return fmt.Errorf("response has no data")
	}
	return json.Unmarshal(e.Data, v)
}

// Records splits a "data" array into raw records. A missing or null "data"
// yields nil.
func (e *Envelope) Records() ([]json.RawMessage, error) {
	if !e.HasData() {
		return nil, nil
	}
	records := []json.RawMessage{}
	if err := json.Unmarshal(e.Data, &records); err != nil {
		return nil, fmt.Errorf("data is not an array: %w", err)
	}
	return records, nil
}
