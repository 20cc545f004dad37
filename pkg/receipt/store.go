package receipt

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyIdentifier is returned by Set for an empty receipt.
	ErrEmptyIdentifier = errors.New("receipt identifier is empty")

	// ErrInvalidKey is returned for keys missing the album or asset.
	ErrInvalidKey = errors.New("invalid receipt key")
)

// Store holds at most one receipt per key.
type Store interface {
	// Get returns the receipt for key. ok is false when there is none.
	Get(ctx context.Context, key Key) (id string, ok bool, err error)

	// Set stores id under key, replacing any previous receipt.
	Set(ctx context.Context, key Key, id string) error

	// Remove deletes the receipt for key. Removing a missing receipt is not an
	// error.
	Remove(ctx context.Context, key Key) error
}

// Backend is a Store owning resources that must be released.
type Backend interface {
	Store
	Name() string
	Close() error
}

// Key identifies the receipt of one asset in one album.
type Key struct {
	Album string
	Asset string
}

// String returns the storage key, "<album>-<asset>-heart".
func (k Key) String() string {
	return k.Album + "-" + k.Asset + "-heart"
}

// Validate checks that both parts are set.
func (k Key) Validate() error {
	if k.Album == "" || k.Asset == "" {
		return fmt.Errorf("%w: album=%q asset=%q", ErrInvalidKey, k.Album, k.Asset)
	}
	return nil
}

// ParseKey parses a storage key produced by Key.String. Album shortcuts never
// contain a dash, so the first dash separates album and asset.
func ParseKey(s string) (Key, error) {
	rest, ok := strings.CutSuffix(s, "-heart")
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	album, asset, ok := strings.Cut(rest, "-")
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	k := Key{Album: album, Asset: asset}
	return k, k.Validate()
}

func checkSet(key Key, id string) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if id == "" {
		return ErrEmptyIdentifier
	}
	return nil
}
