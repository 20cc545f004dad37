package pagination

import (
	"strconv"
)

// Mode is the pagination strategy used for a fetch.
type Mode int

const (
	// ModeCursor pages by the identifier of a boundary item already held.
	ModeCursor Mode = iota

	// ModePageNumber pages by an explicit 1-based page index.
	ModePageNumber
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeCursor:
		return "cursor"
	case ModePageNumber:
		return "page"
	default:
		return "unknown"
	}
}

// ModeFor returns the pagination mode for a sort key. Natural orders ("", "id",
// "time") are continuous and use cursors.
func ModeFor(sort string) Mode {
	switch sort {
	case "", "id", "time":
		return ModeCursor
	default:
		return ModePageNumber
	}
}

// Query is the set of parameters that produced a collection.
type Query struct {
	// Page is the 1-based page number. It is tracked in cursor mode too but only
	// transmitted in page-number mode.
	Page int

	// Sort is the sort key, empty for the natural order.
	Sort string

	// PerPage is the requested page size, 0 when the API default applies.
	PerPage int

	// Filters holds every other parameter, e.g. the album the items belong to.
	Filters Params
}

// ParseQuery builds a Query from normalized parameters. A missing page defaults
// to 1.
func ParseQuery(p Params) (Query, error) {
	q := Query{Page: 1, Filters: Params{}}
	for k, v := range p {
		switch k {
		case ParamPage:
			n, err := strconv.Atoi(v)
			if err != nil {
				return Query{}, &ParamError{Name: k, Value: v, Err: err}
			}
			q.Page = n
		case ParamPerPage:
			n, err := strconv.Atoi(v)
			if err != nil {
				return Query{}, &ParamError{Name: k, Value: v, Err: err}
			}
			if n < 0 {
				return Query{}, &ParamError{Name: k, Value: v, Err: errNegative}
			}
			q.PerPage = n
		case ParamSort:
			q.Sort = v
		default:
			q.Filters[k] = v
		}
	}
	return q, nil
}

// Mode returns the pagination mode for the current sort key.
func (q Query) Mode() Mode {
	return ModeFor(q.Sort)
}

// EffectivePerPage returns the page size the server is expected to honor.
func (q Query) EffectivePerPage() int {
	if q.PerPage > 0 {
		return q.PerPage
	}
	return DefaultPerPage
}

// Filter returns the value of a filter parameter.
func (q Query) Filter(name string) string {
	return q.Filters[name]
}

// Clone returns a deep copy of q.
func (q Query) Clone() Query {
	q.Filters = q.Filters.Clone()
	return q
}

// Params encodes q back into request parameters, page included.
func (q Query) Params() Params {
	p := q.Filters.Clone()
	p[ParamPage] = strconv.Itoa(q.Page)
	if q.Sort != "" {
		p[ParamSort] = q.Sort
	}
	if q.PerPage > 0 {
		p[ParamPerPage] = strconv.Itoa(q.PerPage)
	}
	return p
}
