package pagination

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"sync"

	"github.com/Sternrassler/chute-client/pkg/logging"
	"github.com/rs/zerolog"
)

// MoreState tells whether more items are available after the last forward fetch.
type MoreState int

const (
	// MoreUnknown is the state before any forward fetch completed.
	MoreUnknown MoreState = iota

	// MoreAvailable means the server announced further items.
	MoreAvailable

	// MoreExhausted means the last forward fetch returned a short page.
	MoreExhausted
)

// String implements fmt.Stringer.
func (s MoreState) String() string {
	switch s {
	case MoreAvailable:
		return "available"
	case MoreExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// DefaultCursorField is the identifier name used in since_/max_ parameters.
const DefaultCursorField = "id"

// Options configures how a collection fetches and builds items.
type Options[T any] struct {
	Fetcher Fetcher
	Factory Factory[T]

	// Cursor extracts the cursor value of an item. Without it the collection
	// pages by page number whatever the sort.
	Cursor CursorFunc[T]

	// CursorField names the since_/max_ parameters (default "id").
	CursorField string
}

// Page is a detached batch returned by FetchNext and FetchPrevious.
type Page[T any] struct {
	Items  []T
	Header http.Header
}

// Collection is an ordered list of items that can extend itself with adjacent
// pages. All methods are safe for concurrent use.
type Collection[T any] struct {
	mu       sync.Mutex
	items    []T
	query    Query
	more     MoreState
	inFlight bool

	opts   Options[T]
	logger zerolog.Logger

	done     chan struct{}
	doneOnce sync.Once
	err      error
	header   http.Header
}

// NewCollection builds a resolved collection from an initial result.
func NewCollection[T any](opts Options[T], q Query, items []T, more MoreState) *Collection[T] {
	c := newCollection(opts, q)
	c.items = append([]T(nil), items...)
	c.more = more
	c.resolve(nil)
	return c
}

// NewPending builds an empty collection whose initial load is still to come.
// Until Load completes, forward and backward fetches return ErrFetchInFlight.
func NewPending[T any](opts Options[T], q Query) *Collection[T] {
	c := newCollection(opts, q)
	c.inFlight = true
	return c
}

func newCollection[T any](opts Options[T], q Query) *Collection[T] {
	if opts.CursorField == "" {
		opts.CursorField = DefaultCursorField
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	q = q.Clone()
	return &Collection[T]{
		query:  q,
		opts:   opts,
		logger: logging.NewLogger(logging.ComponentPagination),
		done:   make(chan struct{}),
	}
}

// Load performs the initial request of a pending collection with the caller's
// parameters. On success the contents are replaced wholesale and the more state
// is derived from the page size and the server's pagination block.
func (c *Collection[T]) Load(ctx context.Context, params Params) error {
	c.mu.Lock()
	q := c.query.Clone()
	c.mu.Unlock()

	CollectionFetches.WithLabelValues("initial", c.modeOf(q).String()).Inc()

	batch, resp, err := c.fetch(ctx, params, q)

	c.mu.Lock()
	c.inFlight = false
	if err != nil {
		c.mu.Unlock()
		CollectionFetchErrors.WithLabelValues("initial").Inc()
		c.logger.Warn().Err(err).Msg("Initial collection load failed")
		c.resolve(err)
		return err
	}
	c.header = resp.Header
	if resp.Records != nil {
		c.items = batch
		if len(batch) < q.EffectivePerPage() || !resp.Pagination.HasNext() {
			c.more = MoreExhausted
		} else {
			c.more = MoreAvailable
		}
	}
	more := c.more
	c.mu.Unlock()

	CollectionItemsFetched.Add(float64(len(batch)))
	c.logger.Debug().
		Int("items", len(batch)).
		Str("more", more.String()).
		Msg("Collection loaded")
	c.resolve(nil)
	return nil
}

// FetchNext fetches the page after the last one held and appends it.
//
// In cursor mode the identifier of the last item is sent as max_<field>. In
// page-number mode the incremented page is sent. A page shorter than the
// effective page size marks the collection exhausted; a full page leaves the
// more state untouched. On error the collection is unchanged.
func (c *Collection[T]) FetchNext(ctx context.Context) (*Page[T], error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrFetchInFlight
	}
	q := c.query.Clone()
	q.Page++
	mode := c.modeOf(q)
	params := q.Params()
	if mode == ModeCursor {
		c.clearCursor(params)
		if n := len(c.items); n > 0 {
			params["max_"+c.opts.CursorField] = c.opts.Cursor(c.items[n-1])
		}
	}
	c.inFlight = true
	c.mu.Unlock()

	CollectionFetches.WithLabelValues("next", mode.String()).Inc()
	batch, resp, err := c.fetch(ctx, params, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		CollectionFetchErrors.WithLabelValues("next").Inc()
		return nil, err
	}

	c.items = append(c.items, batch...)
	c.query.Page = q.Page
	if len(batch) < q.EffectivePerPage() {
		c.more = MoreExhausted
	}
	CollectionItemsFetched.Add(float64(len(batch)))

	c.logger.Debug().
		Str("mode", mode.String()).
		Int("page", q.Page).
		Int("items", len(batch)).
		Str("more", c.more.String()).
		Msg("Fetched next page")

	return &Page[T]{Items: batch, Header: resp.Header}, nil
}

// FetchPrevious fetches the page before the first one held and prepends it,
// preserving server order. The more state is not touched.
func (c *Collection[T]) FetchPrevious(ctx context.Context) (*Page[T], error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrFetchInFlight
	}
	q := c.query.Clone()
	q.Page--
	mode := c.modeOf(q)
	if mode == ModePageNumber && q.Page <= 0 {
		c.mu.Unlock()
		return nil, &RangeError{Page: q.Page}
	}
	params := q.Params()
	if mode == ModeCursor {
		c.clearCursor(params)
		if len(c.items) > 0 {
			params["since_"+c.opts.CursorField] = c.opts.Cursor(c.items[0])
		}
	}
	c.inFlight = true
	c.mu.Unlock()

	CollectionFetches.WithLabelValues("previous", mode.String()).Inc()
	batch, resp, err := c.fetch(ctx, params, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		CollectionFetchErrors.WithLabelValues("previous").Inc()
		return nil, err
	}

	merged := make([]T, 0, len(batch)+len(c.items))
	merged = append(merged, batch...)
	c.items = append(merged, c.items...)
	c.query.Page = q.Page
	CollectionItemsFetched.Add(float64(len(batch)))

	c.logger.Debug().
		Str("mode", mode.String()).
		Int("page", q.Page).
		Int("items", len(batch)).
		Msg("Fetched previous page")

	return &Page[T]{Items: batch, Header: resp.Header}, nil
}

// Mode returns the paging mode the collection fetches with.
func (c *Collection[T]) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modeOf(c.query)
}

func (c *Collection[T]) modeOf(q Query) Mode {
	if c.opts.Cursor == nil {
		return ModePageNumber
	}
	return q.Mode()
}

// clearCursor drops the page and any cursor the caller started the query with.
func (c *Collection[T]) clearCursor(params Params) {
	delete(params, ParamPage)
	delete(params, "max_"+c.opts.CursorField)
	delete(params, "since_"+c.opts.CursorField)
}

// fetch issues one request and builds the detached batch. The collection is not
// touched.
func (c *Collection[T]) fetch(ctx context.Context, params Params, q Query) ([]T, *Response, error) {
	if c.opts.Fetcher == nil {
		return nil, nil, fmt.Errorf("collection has no fetcher")
	}
	resp, err := c.opts.Fetcher.Fetch(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	if resp == nil {
		resp = &Response{}
	}

	batch := make([]T, 0, len(resp.Records))
	for i, raw := range resp.Records {
		item, err := c.opts.Factory(raw, q)
		if err != nil {
			return nil, nil, fmt.Errorf("build item %d: %w", i, err)
		}
		batch = append(batch, item)
	}
	return batch, resp, nil
}

// HasMore reports whether more items are known to be available. An unknown
// state reports false.
func (c *Collection[T]) HasMore() bool {
	return c.More() == MoreAvailable
}

// More returns the tri-state availability of further items.
func (c *Collection[T]) More() MoreState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.more
}

// Len returns the number of items held.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// At returns the item at index i. It panics if i is out of range.
func (c *Collection[T]) At(i int) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[i]
}

// Items returns a copy of the items held.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// All iterates over a snapshot of the items held.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	items := c.Items()
	return func(yield func(int, T) bool) {
		for i, item := range items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Query returns a copy of the query that last produced the collection.
func (c *Collection[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Clone()
}

// Header returns the response headers of the initial load.
func (c *Collection[T]) Header() http.Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header
}

// Done is closed once the initial load has completed.
func (c *Collection[T]) Done() <-chan struct{} {
	return c.done
}

// Err returns the error of the initial load, nil while pending or on success.
func (c *Collection[T]) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Wait blocks until the initial load completed or ctx is done.
func (c *Collection[T]) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Collection[T]) resolve(err error) {
	c.doneOnce.Do(func() {
		c.err = err
		close(c.done)
	})
}
