// Package heart creates and removes hearts (likes) on assets.
package heart

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Sternrassler/chute-client/pkg/client"
	"github.com/Sternrassler/chute-client/pkg/pagination"
)

// Heart is a like on an asset. Identifier is the receipt needed to remove it.
type Heart struct {
	ID         int64  `json:"id,omitempty"`
	Identifier string `json:"identifier"`
	AssetID    int64  `json:"asset_id,omitempty"`
}

// Service issues heart requests.
type Service struct {
	client *client.Client
}

// NewService creates a heart service.
func NewService(c *client.Client) *Service {
	return &Service{client: c}
}

// Create hearts the asset identified by its shortcut in album.
func (s *Service) Create(ctx context.Context, album, asset string) (*Heart, error) {
	if album == "" || asset == "" {
		return nil, fmt.Errorf("album and asset are required")
	}

	env, err := s.client.Call(ctx, http.MethodPost, client.RouteAssetHearts, pagination.Params{
		"album": album,
		"asset": asset,
	})
	if err != nil {
		return nil, err
	}

	var h Heart
	if err := env.Decode(&h); err != nil {
		return nil, fmt.Errorf("decode heart: %w", err)
	}
	if h.Identifier == "" {
		return nil, fmt.Errorf("heart response has no identifier")
	}
	return &h, nil
}

// Remove deletes the heart with the given identifier.
func (s *Service) Remove(ctx context.Context, identifier string) error {
	if identifier == "" {
		return fmt.Errorf("heart identifier is required")
	}
	_, err := s.client.Call(ctx, http.MethodDelete, client.RouteHearts, pagination.Params{"id": identifier})
	return err
}
