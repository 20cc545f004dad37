package resource

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// ErrNoData is returned when a single-item response carries no data.
var ErrNoData = errors.New("response has no data")

// Handle is a single item that is filled in place once its request resolves.
// The pointer returned by Item stays the same for the lifetime of the handle.
type Handle[E any] struct {
	mu     sync.Mutex
	item   *E
	header http.Header
	err    error
	done   chan struct{}
}

func newHandle[E any](dst *E) *Handle[E] {
	return &Handle[E]{item: dst, done: make(chan struct{})}
}

func (h *Handle[E]) fill(item *E, header http.Header, err error) {
	h.mu.Lock()
	if err == nil && item != nil {
		*h.item = *item
	}
	h.header = header
	h.err = err
	h.mu.Unlock()
	close(h.done)
}

// Item returns the item pointer. Its fields may only be read after Done is
// closed; use Value for a snapshot at any time.
func (h *Handle[E]) Item() *E {
	return h.item
}

// Value returns a copy of the item. Before resolution it is the zero value.
func (h *Handle[E]) Value() E {
	h.mu.Lock()
	defer h.mu.Unlock()
	return *h.item
}

// Header returns the response headers, nil while pending.
func (h *Handle[E]) Header() http.Header {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.header
}

// Done is closed once the request resolved.
func (h *Handle[E]) Done() <-chan struct{} {
	return h.done
}

// Err returns the request error, nil while pending or on success.
func (h *Handle[E]) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Wait blocks until the request resolved or ctx is done and returns the item.
func (h *Handle[E]) Wait(ctx context.Context) (*E, error) {
	select {
	case <-h.done:
		return h.item, h.Err()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
