// Package resource binds a Chute API route to live collections and handles.
//
// Query returns a Collection that is filled in the background, Get returns a
// Handle that is filled in the background. Both return immediately so callers
// can hold the reference before data arrives.
package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Sternrassler/chute-client/pkg/client"
	"github.com/Sternrassler/chute-client/pkg/logging"
	"github.com/Sternrassler/chute-client/pkg/pagination"
	"github.com/rs/zerolog"
)

// Config describes a resource.
type Config[E any] struct {
	// Route is the path template, e.g. client.RouteAssets.
	Route client.Route

	// Factory builds items from records. Defaults to JSONFactory.
	Factory pagination.Factory[*E]

	// Cursor extracts the cursor value used in since_/max_ parameters. A
	// resource without one pages by page number.
	Cursor pagination.CursorFunc[*E]

	// CursorField names the cursor parameters (default "id").
	CursorField string

	// QueryAliases are applied by Query in addition to the per_page aliases.
	QueryAliases []pagination.Alias

	// GetAliases are applied by Get in addition to QueryAliases.
	GetAliases []pagination.Alias
}

// Resource is a REST binding over one route.
type Resource[E any] struct {
	client *client.Client
	cfg    Config[E]
	logger zerolog.Logger
}

// New creates a resource bound to c.
func New[E any](c *client.Client, cfg Config[E]) *Resource[E] {
	if cfg.Factory == nil {
		cfg.Factory = JSONFactory[E]()
	}
	return &Resource[E]{
		client: c,
		cfg:    cfg,
		logger: logging.NewLogger(logging.ComponentResource).With().Str("route", string(cfg.Route)).Logger(),
	}
}

// JSONFactory decodes each record into a new E.
func JSONFactory[E any]() pagination.Factory[*E] {
	return func(raw json.RawMessage, _ pagination.Query) (*E, error) {
		item := new(E)
		if err := json.Unmarshal(raw, item); err != nil {
			return nil, err
		}
		return item, nil
	}
}

// Client returns the underlying API client.
func (r *Resource[E]) Client() *client.Client {
	return r.client
}

// Options returns the collection options of the resource.
func (r *Resource[E]) Options() pagination.Options[*E] {
	return pagination.Options[*E]{
		Fetcher:     r.client.Bind(r.cfg.Route),
		Factory:     r.cfg.Factory,
		Cursor:      r.cfg.Cursor,
		CursorField: r.cfg.CursorField,
	}
}

// NormalizeQuery returns a copy of params with the query aliases applied.
func (r *Resource[E]) NormalizeQuery(params pagination.Params) pagination.Params {
	aliases := append([]pagination.Alias{pagination.PerPageAlias}, r.cfg.QueryAliases...)
	return pagination.Normalize(params.Clone(), aliases...)
}

// NormalizeGet returns a copy of params with the query and get aliases applied.
func (r *Resource[E]) NormalizeGet(params pagination.Params) pagination.Params {
	return pagination.Normalize(r.NormalizeQuery(params), r.cfg.GetAliases...)
}

// Query starts loading a collection and returns it at once. The returned
// collection is empty until the initial load completes, see Collection.Wait.
// Only malformed paging parameters are reported synchronously; request
// failures surface through Collection.Err.
func (r *Resource[E]) Query(ctx context.Context, params pagination.Params) (*pagination.Collection[*E], error) {
	p := r.NormalizeQuery(params)
	q, err := pagination.ParseQuery(p)
	if err != nil {
		return nil, err
	}

	coll := pagination.NewPending(r.Options(), q)
	r.logger.Debug().
		Str("mode", coll.Mode().String()).
		Int("per_page", q.EffectivePerPage()).
		Msg("Starting collection query")

	go coll.Load(ctx, p)

	return coll, nil
}

// Get starts loading one item and returns its handle at once.
func (r *Resource[E]) Get(ctx context.Context, params pagination.Params) (*Handle[E], error) {
	return r.GetInto(ctx, params, new(E))
}

// GetInto is like Get but fills dst, which the handle then refers to.
func (r *Resource[E]) GetInto(ctx context.Context, params pagination.Params, dst *E) (*Handle[E], error) {
	if dst == nil {
		return nil, fmt.Errorf("get into nil destination")
	}
	p := r.NormalizeGet(params)
	q, err := pagination.ParseQuery(p)
	if err != nil {
		return nil, err
	}

	h := newHandle(dst)
	go func() {
		item, header, err := r.fetchOne(ctx, p, q)
		if err != nil {
			r.logger.Warn().Err(err).Msg("Get failed")
		}
		h.fill(item, header, err)
	}()

	return h, nil
}

func (r *Resource[E]) fetchOne(ctx context.Context, p pagination.Params, q pagination.Query) (*E, http.Header, error) {
	env, err := r.client.Call(ctx, http.MethodGet, r.cfg.Route, p)
	if err != nil {
		return nil, nil, err
	}
	if !env.HasData() {
		return nil, env.Header, ErrNoData
	}
	item, err := r.cfg.Factory(env.Data, q)
	if err != nil {
		return nil, env.Header, fmt.Errorf("build item: %w", err)
	}
	return item, env.Header, nil
}
