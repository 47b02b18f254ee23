package generic

import (
	"context"
	"fmt"
	"sync"
)

// MockDatabaseOperations is a thread-safe DatabaseOperations for tests.
// Every call is appended to Calls as "persist:<key>" or "delete:<key>".
type MockDatabaseOperations[K comparable, V any] struct {
	mu sync.Mutex

	LoadAllFunc func(ctx context.Context) (map[K]V, error)
	PersistFunc func(ctx context.Context, key K, value V) error
	DeleteFunc  func(ctx context.Context, key K) error

	Calls     []string
	Persisted map[K]V
}

// NewMockDatabaseOperations creates a mock whose storage is an in-memory map.
func NewMockDatabaseOperations[K comparable, V any]() *MockDatabaseOperations[K, V] {
	return &MockDatabaseOperations[K, V]{Persisted: make(map[K]V)}
}

// LoadAll implements DatabaseOperations.LoadAll
func (m *MockDatabaseOperations[K, V]) LoadAll(ctx context.Context) (map[K]V, error) {
	if m.LoadAllFunc != nil {
		return m.LoadAllFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[K]V, len(m.Persisted))
	for k, v := range m.Persisted {
		out[k] = v
	}
	return out, nil
}

// Persist implements DatabaseOperations.Persist
func (m *MockDatabaseOperations[K, V]) Persist(ctx context.Context, key K, value V) error {
	if m.PersistFunc != nil {
		if err := m.PersistFunc(ctx, key, value); err != nil {
			m.record(fmt.Sprintf("persist:%v", key))
			return err
		}
	}
	m.mu.Lock()
	m.Persisted[key] = value
	m.mu.Unlock()
	m.record(fmt.Sprintf("persist:%v", key))
	return nil
}

// Delete implements DatabaseOperations.Delete
func (m *MockDatabaseOperations[K, V]) Delete(ctx context.Context, key K) error {
	if m.DeleteFunc != nil {
		if err := m.DeleteFunc(ctx, key); err != nil {
			m.record(fmt.Sprintf("delete:%v", key))
			return err
		}
	}
	m.mu.Lock()
	delete(m.Persisted, key)
	m.mu.Unlock()
	m.record(fmt.Sprintf("delete:%v", key))
	return nil
}

func (m *MockDatabaseOperations[K, V]) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// CallLog returns a copy of the recorded calls.
func (m *MockDatabaseOperations[K, V]) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}
