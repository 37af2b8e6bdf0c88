package memory

import (
	"context"
	"sync"
)

// Store is a process-local key/value store. Data lives as long as the
// process, which matches the "survives a reload in the same session" contract.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns a copy of the value for key, or nil when it has never been set
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// Set replaces the value for key
func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), data...)
	return nil
}
