// Package asset exposes album assets: paged listing, single asset lookup and
// heart toggling.
//
// Assets are listed newest first. With the natural sort orders ("", "id",
// "time") paging continues from the chute_asset_id of the boundary asset,
// otherwise explicit page numbers are used.
package asset

import (
	"encoding/json"
	"strconv"

	"github.com/Sternrassler/chute-client/pkg/client"
	"github.com/Sternrassler/chute-client/pkg/pagination"
	"github.com/Sternrassler/chute-client/pkg/resource"
)

// Asset is an image or video in an album.
type Asset struct {
	ID           int64  `json:"id"`
	ChuteAssetID int64  `json:"chute_asset_id"`
	Shortcut     string `json:"shortcut"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	Caption      string `json:"caption,omitempty"`
	Username     string `json:"username,omitempty"`
	Hearts       int    `json:"hearts"`
	Votes        int    `json:"votes"`

	// Album is the shortcut of the album the asset was fetched from. The API
	// omits it from asset records.
	Album string `json:"album,omitempty"`
}

// AlbumAlias accepts album_id and album_shortcut for album.
var AlbumAlias = pagination.Alias{Canonical: "album", Names: []string{"album_id", "album_shortcut"}}

// IDAlias accepts asset and shortcut for id.
var IDAlias = pagination.Alias{Canonical: "id", Names: []string{"asset", "shortcut"}}

// Factory decodes an asset record and stamps the album of the query on it.
func Factory(raw json.RawMessage, q pagination.Query) (*Asset, error) {
	a := new(Asset)
	if err := json.Unmarshal(raw, a); err != nil {
		return nil, err
	}
	if album := q.Filter("album"); album != "" {
		a.Album = album
	}
	return a, nil
}

// Cursor returns the chute_asset_id used for since_id/max_id paging.
func Cursor(a *Asset) string {
	return strconv.FormatInt(a.ChuteAssetID, 10)
}

// NewResource creates the asset resource on c.
func NewResource(c *client.Client) *resource.Resource[Asset] {
	return resource.New(c, resource.Config[Asset]{
		Route:        client.RouteAssets,
		Factory:      Factory,
		Cursor:       Cursor,
		CursorField:  "id",
		QueryAliases: []pagination.Alias{AlbumAlias},
		GetAliases:   []pagination.Alias{IDAlias},
	})
}
