package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/websocket"
)

// ErrStoreUnavailable is returned by MockKeyValueStore when a failure is injected
var ErrStoreUnavailable = errors.New("store unavailable")

// MockKeyValueStore is an in-memory domain.KeyValueStore with failure injection
type MockKeyValueStore struct {
	Data    map[string][]byte
	FailGet bool
	FailSet bool
	// FailSetKey fails only writes to this key when non-empty
	FailSetKey string
	SetCalls   int
	mu         sync.Mutex
}

// NewMockKeyValueStore creates a new MockKeyValueStore
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{
		Data: make(map[string][]byte),
	}
}

// Get returns a copy of the stored value, or nil when the key is missing
func (m *MockKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailGet {
		return nil, ErrStoreUnavailable
	}
	data, ok := m.Data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// Set stores a copy of data under key
func (m *MockKeyValueStore) Set(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	if m.FailSet || (m.FailSetKey != "" && m.FailSetKey == key) {
		return ErrStoreUnavailable
	}
	m.Data[key] = append([]byte(nil), data...)
	return nil
}

// SetFailures toggles failure injection
func (m *MockKeyValueStore) SetFailures(failGet, failSet bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailGet = failGet
	m.FailSet = failSet
}

// Ensure MockKeyValueStore implements domain.KeyValueStore
var _ domain.KeyValueStore = (*MockKeyValueStore)(nil)

// RecordingPublisher captures published events
type RecordingPublisher struct {
	Events     []websocket.Event
	Namespaces []string
	mu         sync.Mutex
}

// NewRecordingPublisher creates a new RecordingPublisher
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

// Publish records the event
func (p *RecordingPublisher) Publish(namespace string, event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	p.Namespaces = append(p.Namespaces, namespace)
}

// Types returns the recorded event types in order
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}

var _ websocket.EventPublisher = (*RecordingPublisher)(nil)
