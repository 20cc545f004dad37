package client

import (
	"net/url"
	"strings"

	"github.com/Sternrassler/chute-client/pkg/pagination"
)

// Route is a path template such as "/albums/:album/assets/:id".
type Route string

// Routes of the Chute API.
const (
	RouteAssets      Route = "/albums/:album/assets/:id"
	RouteAssetHearts Route = "/albums/:album/assets/:asset/hearts"
	RouteHearts      Route = "/hearts/:id"
)

// Expand fills the ":name" segments of r from params. Segments whose parameter
// is missing or empty are dropped. Parameters not used by the template are
// returned as query values.
func (r Route) Expand(params pagination.Params) (string, url.Values) {
	used := make(map[string]bool)
	segments := strings.Split(strings.Trim(string(r), "/"), "/")
	out := make([]string, 0, len(segments))

	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if !strings.HasPrefix(seg, ":") {
			out = append(out, seg)
			continue
		}
		name := seg[1:]
		used[name] = true
		if v := params[name]; v != "" {
			out = append(out, url.PathEscape(v))
		}
	}

	query := url.Values{}
	for k, v := range params {
		if used[k] {
			continue
		}
		query.Set(k, v)
	}

	return "/" + strings.Join(out, "/"), query
}
