package testutil

import (
	"context"
	"sync"
)

// MockNameStore is an in-memory name store that counts reads and can be
// made to fail.
type MockNameStore struct {
	mu        sync.Mutex
	Resources map[string]string
	Shops     map[string]string
	Reads     int
	Err       error
	Closed    bool
}

// NewMockNameStore creates an empty mock name store.
func NewMockNameStore() *MockNameStore {
	return &MockNameStore{
		Resources: make(map[string]string),
		Shops:     make(map[string]string),
	}
}

// ResourceNames returns a copy of the resource names.
func (m *MockNameStore) ResourceNames(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Reads++
	if m.Err != nil {
		return nil, m.Err
	}
	return copyMap(m.Resources), nil
}

// ShopNames returns a copy of the shop names.
func (m *MockNameStore) ShopNames(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Reads++
	if m.Err != nil {
		return nil, m.Err
	}
	return copyMap(m.Shops), nil
}

// SaveResourceName stores a resource name.
func (m *MockNameStore) SaveResourceName(ctx context.Context, guid, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Resources[guid] = name
	return nil
}

// SaveShopName stores a shop name.
func (m *MockNameStore) SaveShopName(ctx context.Context, shopID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Shops[shopID] = name
	return nil
}

// Close marks the store closed.
func (m *MockNameStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Closed = true
	return nil
}

// ReadCount returns how many list reads reached the store.
func (m *MockNameStore) ReadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Reads
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
