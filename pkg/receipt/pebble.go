package receipt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// pebblePrefix separates receipts from anything else stored in the database.
const pebblePrefix = "receipt:"

// PebbleStore keeps receipts in an on-disk Pebble database.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebbleStore opens or creates the database at path.
func OpenPebbleStore(path string) (*PebbleStore, error) {
	if path == "" {
		return nil, fmt.Errorf("pebble path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create pebble dir: %w", err)
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

// Name returns "pebble".
func (s *PebbleStore) Name() string { return "pebble" }

func pebbleKey(k Key) []byte {
	return []byte(pebblePrefix + k.String())
}

// Get implements Store.
func (s *PebbleStore) Get(_ context.Context, key Key) (string, bool, error) {
	v, closer, err := s.db.Get(pebbleKey(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			observe(s.Name(), "get", nil)
			return "", false, nil
		}
		observe(s.Name(), "get", err)
		return "", false, fmt.Errorf("pebble get: %w", err)
	}
	// v is only valid until closer is closed
	id := string(v)
	closer.Close()
	observe(s.Name(), "get", nil)
	return id, true, nil
}

// Set implements Store.
func (s *PebbleStore) Set(_ context.Context, key Key, id string) error {
	if err := checkSet(key, id); err != nil {
		observe(s.Name(), "set", err)
		return err
	}
	if err := s.db.Set(pebbleKey(key), []byte(id), pebble.Sync); err != nil {
		observe(s.Name(), "set", err)
		return fmt.Errorf("pebble set: %w", err)
	}
	observe(s.Name(), "set", nil)
	return nil
}

// Remove implements Store.
func (s *PebbleStore) Remove(_ context.Context, key Key) error {
	if err := s.db.Delete(pebbleKey(key), pebble.Sync); err != nil {
		observe(s.Name(), "remove", err)
		return fmt.Errorf("pebble delete: %w", err)
	}
	observe(s.Name(), "remove", nil)
	return nil
}

// Keys returns every stored receipt key.
func (s *PebbleStore) Keys() ([]Key, error) {
	prefix := []byte(pebblePrefix)
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: []byte(pebblePrefix[:len(pebblePrefix)-1] + ";"),
	})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var keys []Key
	for ok := it.First(); ok; ok = it.Next() {
		k, err := ParseKey(string(it.Key()[len(prefix):]))
		if err != nil {
			continue
		}
		keys = append(keys, k)
	}
	return keys, it.Error()
}

// Close closes the database.
func (s *PebbleStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
