package receipt

import (
	"context"
	"sync"
)

// MemoryStore keeps receipts in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	receipts map[Key]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{receipts: make(map[Key]string)}
}

// Name returns "memory".
func (s *MemoryStore) Name() string { return "memory" }

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key Key) (string, bool, error) {
	s.mu.RLock()
	id, ok := s.receipts[key]
	s.mu.RUnlock()
	observe(s.Name(), "get", nil)
	return id, ok, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key Key, id string) error {
	if err := checkSet(key, id); err != nil {
		observe(s.Name(), "set", err)
		return err
	}
	s.mu.Lock()
	s.receipts[key] = id
	s.mu.Unlock()
	observe(s.Name(), "set", nil)
	return nil
}

// Remove implements Store.
func (s *MemoryStore) Remove(_ context.Context, key Key) error {
	s.mu.Lock()
	delete(s.receipts, key)
	s.mu.Unlock()
	observe(s.Name(), "remove", nil)
	return nil
}

// Len returns the number of receipts held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.receipts)
}

// Close implements Backend.
func (s *MemoryStore) Close() error { return nil }
