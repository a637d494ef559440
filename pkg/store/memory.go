package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps records in a map. It is the default backend for tests
// and local development; contents vanish with the process.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Get retrieves a record by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[name]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Put stores or replaces a record.
func (s *MemoryStore) Put(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.records[rec.Name]; ok {
		stamp(&rec, &prev)
	} else {
		stamp(&rec, nil)
	}
	s.records[rec.Name] = rec
	return nil
}

// List returns the stored names in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[name]; !ok {
		return ErrNotFound
	}
	delete(s.records, name)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
